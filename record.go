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
	"encoding/json"
	"fmt"
)

// Record is a validated MARC21 record.
//
// A Record is created by one of the RecordFrom functions and is never modified afterwards.
// Accessors return copies or read-only selectors.
type Record struct {
	leader     *Leader
	leaderText string
	fixed      FixedFields
	variable   VariableFields
	marc       []byte
	ctx        *Context
}

// RecordFromBytes decodes and validates a MARC21 record. A nil ctx means DefaultContext().
func RecordFromBytes(raw []byte, ctx *Context) (*Record, error) {
	ctx = contextOrDefault(ctx)
	s, err := NewUnmarshaler(ctx).Unmarshal(raw)
	if err != nil {
		return nil, err
	}
	return newRecord(s, ctx)
}

// RecordFromXML decodes and validates a parsed MARCXML record. The record keeps the regenerated
// MARC21 byte stream. A nil ctx means DefaultContext().
func RecordFromXML(x *XMLRecord, ctx *Context) (*Record, error) {
	ctx = contextOrDefault(ctx)
	s, err := NewXMLUnmarshaler(ctx).Unmarshal(x)
	if err != nil {
		return nil, err
	}
	return newRecord(s, ctx)
}

// RecordFromStructured validates already decoded data, e.g. read back from storage.
// A nil ctx means DefaultContext().
func RecordFromStructured(s *Structured, ctx *Context) (*Record, error) {
	if s == nil {
		return nil, newFormatError("missing structured record")
	}
	return newRecord(s, contextOrDefault(ctx))
}

// RecordFromJSON validates a record in its structured JSON form.
func RecordFromJSON(data []byte, ctx *Context) (*Record, error) {
	s := &Structured{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, newWrappedFormatError("invalid record JSON", err)
	}
	return RecordFromStructured(s, ctx)
}

func newRecord(s *Structured, ctx *Context) (*Record, error) {
	r := &Record{
		leaderText: s.Leader,
		fixed:      FixedFields{},
		variable:   VariableFields{},
		ctx:        ctx,
	}
	for tag, value := range s.FixedFields {
		r.fixed[tag] = value
	}
	for tag, fields := range s.VariableFields {
		instances := make([]*VariableField, 0, len(fields))
		for _, f := range fields {
			if f == nil {
				instances = append(instances, nil)
				continue
			}
			c := f.clone()
			c.Ind1 = normalizeIndicator(c.Ind1)
			c.Ind2 = normalizeIndicator(c.Ind2)
			instances = append(instances, c)
		}
		r.variable[tag] = instances
	}
	if s.Marc != nil {
		r.marc = append([]byte(nil), s.Marc...)
	}

	if err := validateRecord(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Context returns the configuration the record was created with.
func (r *Record) Context() *Context {
	return r.ctx
}

// LeaderText returns the leader as found in the record.
func (r *Record) LeaderText() string {
	return r.leaderText
}

// FixedFields returns a copy of the fixed fields.
func (r *Record) FixedFields() FixedFields {
	return r.fixed.clone()
}

// VariableFields returns a copy of the variable fields.
func (r *Record) VariableFields() VariableFields {
	return r.variable.clone()
}

// HasMarc reports if the record retains the byte stream it was created from.
func (r *Record) HasMarc() bool {
	return r.marc != nil
}

// Marc returns the retained byte stream, or encodes the record if there is none.
func (r *Record) Marc() ([]byte, error) {
	if r.marc != nil {
		return append([]byte(nil), r.marc...), nil
	}
	return NewMarshaler().Marshal(r)
}

// Structured returns a copy of the record in its structured form.
func (r *Record) Structured() *Structured {
	s := &Structured{
		Leader:         r.leaderText,
		FixedFields:    r.fixed.clone(),
		VariableFields: r.variable.clone(),
	}
	if r.marc != nil {
		s.Marc = append([]byte(nil), r.marc...)
	}
	return s
}

// MarshalJSON implements json.Marshaler. The raw byte stream is not included.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(&Structured{
		Leader:         r.leaderText,
		FixedFields:    r.fixed,
		VariableFields: r.variable,
	})
}

func (r *Record) String() string {
	title, _ := r.TitleRelated().TitleStatement().Title()
	return fmt.Sprintf("MARC record: type: %s, id: %s, title: %s",
		r.leader.TypeOfRecord, r.fixed.Get("001"), title)
}
