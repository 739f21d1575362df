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

// Marshaler encodes records.
type Marshaler interface {
	Marshal(record *Record) ([]byte, error)
}

type defaultMarshaler struct {
}

// NewMarshaler returns a Marshaler producing MARC21 byte streams.
func NewMarshaler() Marshaler {
	return &defaultMarshaler{}
}

// Marshal encodes the fields of record. Fixed fields come first, then variable fields,
// both in tag order. Instances keep their order and subfield codes are written in ascending order.
func (m *defaultMarshaler) Marshal(record *Record) ([]byte, error) {
	data, _, err := marshalFields(record.ctx, record.leaderText, record.fixed, record.variable)
	return data, err
}

func marshalFields(ctx *Context, leaderText string, fixed FixedFields, variable VariableFields) ([]byte, string, error) {
	rb := &recordBuilder{}
	for _, tag := range fixed.Tags() {
		value := fixed[tag]
		if err := checkContent(tag, value); err != nil {
			return nil, "", err
		}
		raw, err := ctx.codec.encode(value)
		if err != nil {
			return nil, "", err
		}
		if err := rb.addField(tag, raw); err != nil {
			return nil, "", err
		}
	}
	for _, tag := range variable.Tags() {
		for _, vf := range variable[tag] {
			raw, err := encodeDataField(ctx.codec, tag, vf.Ind1, vf.Ind2, xmlSubfields(vf))
			if err != nil {
				return nil, "", err
			}
			if err := rb.addField(tag, raw); err != nil {
				return nil, "", err
			}
		}
	}
	return rb.build(leaderText)
}

// MarshalXMLRecord converts record to its MARCXML form.
func MarshalXMLRecord(record *Record) *XMLRecord {
	x := &XMLRecord{Leader: record.leaderText}
	for _, tag := range record.fixed.Tags() {
		x.Fields = append(x.Fields, XMLField{Control: true, Tag: tag, Value: record.fixed[tag]})
	}
	for _, tag := range record.variable.Tags() {
		for _, vf := range record.variable[tag] {
			x.Fields = append(x.Fields, XMLField{
				Tag:       tag,
				Ind1:      denormalizeIndicator(vf.Ind1),
				Ind2:      denormalizeIndicator(vf.Ind2),
				Subfields: xmlSubfields(vf),
			})
		}
	}
	return x
}

func xmlSubfields(vf *VariableField) []XMLSubfield {
	var subfields []XMLSubfield
	for _, code := range vf.Codes() {
		for _, value := range vf.Subfields[code] {
			subfields = append(subfields, XMLSubfield{Code: code, Value: value})
		}
	}
	return subfields
}
