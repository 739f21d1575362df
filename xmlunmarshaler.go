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
	"strings"
)

// XMLUnmarshaler decodes a parsed MARCXML record and regenerates its MARC21 byte stream.
type XMLUnmarshaler interface {
	Unmarshal(record *XMLRecord) (*Structured, error)
}

type xmlUnmarshaler struct {
	ctx *Context
}

// NewXMLUnmarshaler creates an XMLUnmarshaler. A nil ctx means DefaultContext().
func NewXMLUnmarshaler(ctx *Context) XMLUnmarshaler {
	return &xmlUnmarshaler{ctx: contextOrDefault(ctx)}
}

// Unmarshal decodes the fields in document order. Every accepted field is also appended to a
// regenerated MARC21 record, which is returned in Structured.Marc together with its leader.
func (u *xmlUnmarshaler) Unmarshal(record *XMLRecord) (*Structured, error) {
	if record == nil {
		return nil, newFormatError("missing MARCXML record")
	}
	if len(record.Leader) != LeaderLength {
		return nil, newFormatErrorf("invalid leader length: %d (expected %d)", len(record.Leader), LeaderLength)
	}
	if _, err := ParseLeader([]byte(record.Leader)); err != nil {
		return nil, err
	}

	d := newFieldDecoder(u.ctx)
	rb := &recordBuilder{}
	for _, f := range record.Fields {
		tag, code, ok, err := d.resolveTag(f.Tag)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		if code != "" {
			text := f.Value
			if !f.Control {
				values := make([]string, 0, len(f.Subfields))
				for _, sf := range f.Subfields {
					values = append(values, sf.Value)
				}
				text = strings.Join(values, " ")
			}
			if !d.addAliased(tag, code, text) {
				continue
			}
			raw, err := u.dataFieldBytes(tag, blankIndicator, blankIndicator, []XMLSubfield{{Code: code, Value: text}})
			if err != nil {
				return nil, err
			}
			if err := rb.addField(tag, raw); err != nil {
				return nil, err
			}
			continue
		}

		var raw []byte
		if f.Control {
			raw, err = u.controlFieldBytes(tag, f.Value)
		} else {
			raw, err = u.dataFieldBytes(tag, f.Ind1, f.Ind2, f.Subfields)
		}
		if err != nil {
			return nil, err
		}
		d.add(tag, raw)
		if err := rb.addField(tag, raw); err != nil {
			return nil, err
		}
	}

	data, leader, err := rb.build(record.Leader)
	if err != nil {
		return nil, err
	}
	s, err := d.finish()
	if err != nil {
		return nil, err
	}
	s.Leader = leader
	s.Marc = data
	return s, nil
}

func (u *xmlUnmarshaler) controlFieldBytes(tag, value string) ([]byte, error) {
	if err := checkContent(tag, value); err != nil {
		return nil, err
	}
	return u.ctx.codec.encode(value)
}

func (u *xmlUnmarshaler) dataFieldBytes(tag, ind1, ind2 string, subfields []XMLSubfield) ([]byte, error) {
	return encodeDataField(u.ctx.codec, tag, ind1, ind2, subfields)
}

// encodeDataField builds ind1 + ind2 + (delimiter + code + value)* for one data field.
func encodeDataField(codec *contentCodec, tag, ind1, ind2 string, subfields []XMLSubfield) ([]byte, error) {
	buf := bytes.Buffer{}
	for _, ind := range []string{ind1, ind2} {
		ind = denormalizeIndicator(ind)
		if len(ind) != 1 || nonASCIIIndex([]byte(ind)) >= 0 || checkContent(tag, ind) != nil {
			return nil, newFormatErrorf("field %s: indicator '%s' must be a single ASCII character", tag, ind)
		}
		buf.WriteString(ind)
	}
	for _, sf := range subfields {
		if len(sf.Code) != 1 || nonASCIIIndex([]byte(sf.Code)) >= 0 || checkContent(tag, sf.Code) != nil {
			return nil, newFormatErrorf("field %s: subfield code '%s' must be a single ASCII character", tag, sf.Code)
		}
		if err := checkContent(tag, sf.Value); err != nil {
			return nil, err
		}
		value, err := codec.encode(sf.Value)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(SubfieldDelimiter)
		buf.WriteString(sf.Code)
		buf.Write(value)
	}
	return buf.Bytes(), nil
}

// checkContent rejects values containing structural bytes.
func checkContent(tag, value string) error {
	if strings.ContainsAny(value, "\x1d\x1e\x1f") {
		return newFormatErrorf("field %s: content contains a MARC delimiter", tag)
	}
	return nil
}
