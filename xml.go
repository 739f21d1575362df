/*
 * Copyright 2021 National Library of Norway.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package gomarc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
)

// MarcXMLNamespace is the namespace of MARCXML documents.
const MarcXMLNamespace = "http://www.loc.gov/MARC21/slim"

// XMLSubfield is a subfield element.
type XMLSubfield struct {
	Code  string `xml:"code,attr"`
	Value string `xml:",chardata"`
}

// XMLField is a controlfield or datafield element.
type XMLField struct {
	// Control is true for controlfield elements.
	Control   bool
	Tag       string
	Ind1      string
	Ind2      string
	Value     string
	Subfields []XMLSubfield
}

// XMLRecord is a parsed MARCXML record element. Fields are kept in document order.
type XMLRecord struct {
	Leader string
	Fields []XMLField
}

type xmlControlField struct {
	Tag   string `xml:"tag,attr"`
	Value string `xml:",chardata"`
}

type xmlDataField struct {
	Tag       string        `xml:"tag,attr"`
	Ind1      string        `xml:"ind1,attr"`
	Ind2      string        `xml:"ind2,attr"`
	Subfields []XMLSubfield `xml:"subfield"`
}

// UnmarshalXML implements xml.Unmarshaler.
func (r *XMLRecord) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		t, err := d.Token()
		if err != nil {
			return err
		}
		switch el := t.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "leader":
				if err := d.DecodeElement(&r.Leader, &el); err != nil {
					return err
				}
			case "controlfield":
				cf := xmlControlField{}
				if err := d.DecodeElement(&cf, &el); err != nil {
					return err
				}
				r.Fields = append(r.Fields, XMLField{Control: true, Tag: cf.Tag, Value: cf.Value})
			case "datafield":
				df := xmlDataField{}
				if err := d.DecodeElement(&df, &el); err != nil {
					return err
				}
				r.Fields = append(r.Fields, XMLField{Tag: df.Tag, Ind1: df.Ind1, Ind2: df.Ind2, Subfields: df.Subfields})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// MarshalXML implements xml.Marshaler.
func (r *XMLRecord) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Space: MarcXMLNamespace, Local: "record"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := e.EncodeElement(r.Leader, xml.StartElement{Name: xml.Name{Local: "leader"}}); err != nil {
		return err
	}
	for _, f := range r.Fields {
		if f.Control {
			el := xml.StartElement{
				Name: xml.Name{Local: "controlfield"},
				Attr: []xml.Attr{{Name: xml.Name{Local: "tag"}, Value: f.Tag}},
			}
			if err := e.EncodeElement(f.Value, el); err != nil {
				return err
			}
			continue
		}
		el := xml.StartElement{
			Name: xml.Name{Local: "datafield"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "tag"}, Value: f.Tag},
				{Name: xml.Name{Local: "ind1"}, Value: denormalizeIndicator(f.Ind1)},
				{Name: xml.Name{Local: "ind2"}, Value: denormalizeIndicator(f.Ind2)},
			},
		}
		if err := e.EncodeToken(el); err != nil {
			return err
		}
		for _, sf := range f.Subfields {
			sel := xml.StartElement{
				Name: xml.Name{Local: "subfield"},
				Attr: []xml.Attr{{Name: xml.Name{Local: "code"}, Value: sf.Code}},
			}
			if err := e.EncodeElement(sf.Value, sel); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(el.End()); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// Bytes returns the record as an indented MARCXML document.
func (r *XMLRecord) Bytes() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteString(xml.Header)
	e := xml.NewEncoder(buf)
	e.Indent("", "  ")
	if err := e.Encode(r); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// ParseXMLCollection parses every record element in a MARCXML document.
// The document element may be a collection or a single record.
func ParseXMLCollection(data []byte) ([]*XMLRecord, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	var records []*XMLRecord
	for {
		t, err := d.Token()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, newWrappedFormatError("malformed MARCXML", err)
		}
		if el, ok := t.(xml.StartElement); ok && el.Name.Local == "record" {
			r := &XMLRecord{}
			if err := d.DecodeElement(r, &el); err != nil {
				return nil, newWrappedFormatError("malformed MARCXML record", err)
			}
			records = append(records, r)
		}
	}
}

// ParseXMLRecord parses the first record element in a MARCXML document.
func ParseXMLRecord(data []byte) (*XMLRecord, error) {
	records, err := ParseXMLCollection(data)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, newFormatError("no record element in MARCXML document")
	}
	return records[0], nil
}

type xmlCollection struct {
	XMLName xml.Name     `xml:"http://www.loc.gov/MARC21/slim collection"`
	Records []*XMLRecord `xml:"record"`
}

// MarshalXMLCollection returns the records wrapped in a collection element.
func MarshalXMLCollection(records []*XMLRecord) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteString(xml.Header)
	e := xml.NewEncoder(buf)
	e.Indent("", "  ")
	if err := e.Encode(&xmlCollection{Records: records}); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
