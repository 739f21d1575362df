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
	"regexp"
	"sort"
)

const (
	LeaderLength         = 24
	DirectoryEntryLength = 12
	// MaxRecordLength is the largest record length the five digit leader field can hold.
	MaxRecordLength = 99999

	FieldTerminator    = 0x1e
	RecordTerminator   = 0x1d
	SubfieldDelimiter  = 0x1f
	blankIndicator     = " "
	controlFieldTagMax = "010"
)

var (
	tagPattern          = regexp.MustCompile(`^\d{3}$`)
	subfieldCodePattern = regexp.MustCompile(`^[a-z0-9]$`)
	indicatorPattern    = regexp.MustCompile(`^[0-9a-z| ]?$`)
)

// IsValidTag reports if tag is exactly three digits.
func IsValidTag(tag string) bool {
	return tagPattern.MatchString(tag)
}

// IsValidSubfieldCode reports if code is a single lowercase letter or digit.
func IsValidSubfieldCode(code string) bool {
	return subfieldCodePattern.MatchString(code)
}

// IsValidIndicator reports if ind is empty, blank, a lowercase letter, a digit or the fill character '|'.
func IsValidIndicator(ind string) bool {
	return indicatorPattern.MatchString(ind)
}

// FixedFields maps control field tags to their raw values.
type FixedFields map[string]string

// Has reports if the tag is present.
func (ff FixedFields) Has(tag string) bool {
	_, ok := ff[tag]
	return ok
}

// Get returns the value of tag or "" if absent.
func (ff FixedFields) Get(tag string) string {
	return ff[tag]
}

// Tags returns the tags in ascending order.
func (ff FixedFields) Tags() []string {
	tags := make([]string, 0, len(ff))
	for t := range ff {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

func (ff FixedFields) clone() FixedFields {
	r := make(FixedFields, len(ff))
	for k, v := range ff {
		r[k] = v
	}
	return r
}

// VariableField is one instance of a data field.
//
// A blank indicator is represented by the empty string.
type VariableField struct {
	Ind1      string              `json:"ind1,omitempty" yaml:"ind1,omitempty"`
	Ind2      string              `json:"ind2,omitempty" yaml:"ind2,omitempty"`
	Subfields map[string][]string `json:"subfields" yaml:"subfields"`
}

func newVariableField(ind1, ind2 string) *VariableField {
	return &VariableField{
		Ind1:      normalizeIndicator(ind1),
		Ind2:      normalizeIndicator(ind2),
		Subfields: map[string][]string{},
	}
}

func (vf *VariableField) addSubfield(code, value string) {
	vf.Subfields[code] = append(vf.Subfields[code], value)
}

// Codes returns the subfield codes present in ascending order.
func (vf *VariableField) Codes() []string {
	codes := make([]string, 0, len(vf.Subfields))
	for c := range vf.Subfields {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

func (vf *VariableField) clone() *VariableField {
	r := &VariableField{Ind1: vf.Ind1, Ind2: vf.Ind2, Subfields: make(map[string][]string, len(vf.Subfields))}
	for c, values := range vf.Subfields {
		r.Subfields[c] = append([]string(nil), values...)
	}
	return r
}

// VariableFields maps data field tags to their instances in record order.
type VariableFields map[string][]*VariableField

// Has reports if at least one instance of tag is present.
func (vfs VariableFields) Has(tag string) bool {
	return len(vfs[tag]) > 0
}

// Get returns all instances of tag.
func (vfs VariableFields) Get(tag string) []*VariableField {
	return vfs[tag]
}

// Tags returns the tags in ascending order.
func (vfs VariableFields) Tags() []string {
	tags := make([]string, 0, len(vfs))
	for t := range vfs {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

func (vfs VariableFields) add(tag string, vf *VariableField) {
	vfs[tag] = append(vfs[tag], vf)
}

func (vfs VariableFields) clone() VariableFields {
	r := make(VariableFields, len(vfs))
	for t, fields := range vfs {
		c := make([]*VariableField, len(fields))
		for i, f := range fields {
			c[i] = f.clone()
		}
		r[t] = c
	}
	return r
}

// Structured is the plain form produced by the decoders and consumed by record construction.
type Structured struct {
	Leader         string         `json:"leader" yaml:"leader"`
	FixedFields    FixedFields    `json:"fixed_fields" yaml:"fixed_fields"`
	VariableFields VariableFields `json:"variable_fields" yaml:"variable_fields"`
	// Marc holds the raw record if known. It is never serialized.
	Marc []byte `json:"-" yaml:"-"`
}

func newStructured() *Structured {
	return &Structured{
		FixedFields:    FixedFields{},
		VariableFields: VariableFields{},
	}
}

func normalizeIndicator(ind string) string {
	if ind == blankIndicator {
		return ""
	}
	return ind
}

func denormalizeIndicator(ind string) string {
	if ind == "" {
		return blankIndicator
	}
	return ind
}
