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
	"sort"
)

// FieldKind tells how the content of a tag is decoded.
type FieldKind int8

const (
	// FixedKind fields are stored verbatim without indicators or subfields.
	FixedKind FieldKind = iota + 1
	// VariableKind fields have two indicators followed by subfields.
	VariableKind
)

func (k FieldKind) String() string {
	switch k {
	case FixedKind:
		return "fixed"
	case VariableKind:
		return "variable"
	}
	return "unknown"
}

// SubfieldEntry is the declarative mapping of one subfield code.
type SubfieldEntry struct {
	Subfield   string `mapstructure:"subfield" json:"subfield" yaml:"subfield"`
	Repeatable bool   `mapstructure:"repeatable" json:"repeatable,omitempty" yaml:"repeatable,omitempty"`
}

// MappingEntry is the declarative mapping of one tag. An entry without subfields maps a fixed field.
type MappingEntry struct {
	Section    string                   `mapstructure:"section" json:"section" yaml:"section"`
	Field      string                   `mapstructure:"field" json:"field" yaml:"field"`
	Repeatable bool                     `mapstructure:"repeatable" json:"repeatable,omitempty" yaml:"repeatable,omitempty"`
	Subfields  map[string]SubfieldEntry `mapstructure:"subfields" json:"subfields,omitempty" yaml:"subfields,omitempty"`
}

// MappingTable maps tags to application sections and fields.
type MappingTable map[string]MappingEntry

// FieldInfo is implemented by FixedFieldInfo and VariableFieldInfo.
type FieldInfo interface {
	Kind() FieldKind
	Target() (section string, field string)
}

// FixedFieldInfo maps a control field to a named field.
type FixedFieldInfo struct {
	Tag     string
	Section string
	Field   string
}

func (f *FixedFieldInfo) Kind() FieldKind { return FixedKind }

func (f *FixedFieldInfo) Target() (string, string) { return f.Section, f.Field }

// SubfieldInfo maps a subfield code to a named subfield.
type SubfieldInfo struct {
	Code       string
	Subfield   string
	Repeatable bool
}

// VariableFieldInfo maps a data field and its subfields to named fields.
type VariableFieldInfo struct {
	Tag        string
	Section    string
	Field      string
	Repeatable bool
	Subfields  map[string]*SubfieldInfo
}

func (f *VariableFieldInfo) Kind() FieldKind { return VariableKind }

func (f *VariableFieldInfo) Target() (string, string) { return f.Section, f.Field }

// HasSubfield reports if code is declared for the field.
// A field declaring no subfields accepts every code.
func (f *VariableFieldInfo) HasSubfield(code string) bool {
	if len(f.Subfields) == 0 {
		return true
	}
	_, ok := f.Subfields[code]
	return ok
}

// Mapper is an immutable lookup table built from a MappingTable.
type Mapper struct {
	fields map[string]FieldInfo
}

// NewMapper builds a Mapper. Inconsistent entries make it fail with a *MappingError.
func NewMapper(table MappingTable) (*Mapper, error) {
	m := &Mapper{fields: make(map[string]FieldInfo, len(table))}

	tags := make([]string, 0, len(table))
	for tag := range table {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		entry := table[tag]
		if !IsValidTag(tag) {
			return nil, newMappingErrorf(tag, "tag must be three digits")
		}
		if entry.Section == "" {
			return nil, newMappingErrorf(tag, "missing section")
		}
		if entry.Field == "" {
			return nil, newMappingErrorf(tag, "missing field")
		}

		if entry.Subfields == nil {
			if entry.Repeatable {
				return nil, newMappingErrorf(tag, "fixed field cannot be repeatable")
			}
			m.fields[tag] = &FixedFieldInfo{Tag: tag, Section: entry.Section, Field: entry.Field}
			continue
		}

		vf := &VariableFieldInfo{
			Tag:        tag,
			Section:    entry.Section,
			Field:      entry.Field,
			Repeatable: entry.Repeatable,
			Subfields:  make(map[string]*SubfieldInfo, len(entry.Subfields)),
		}
		names := make(map[string]string, len(entry.Subfields))
		for code, sf := range entry.Subfields {
			if !IsValidSubfieldCode(code) {
				return nil, newMappingErrorf(tag, "invalid subfield code '%s'", code)
			}
			if sf.Subfield == "" {
				return nil, newMappingErrorf(tag, "missing subfield name for code '%s'", code)
			}
			if other, ok := names[sf.Subfield]; ok {
				return nil, newMappingErrorf(tag, "subfield name '%s' used for both '%s' and '%s'", sf.Subfield, other, code)
			}
			names[sf.Subfield] = code
			vf.Subfields[code] = &SubfieldInfo{Code: code, Subfield: sf.Subfield, Repeatable: sf.Repeatable}
		}
		m.fields[tag] = vf
	}
	return m, nil
}

// FieldInfoFor returns the mapping of tag, if any.
func (m *Mapper) FieldInfoFor(tag string) (FieldInfo, bool) {
	fi, ok := m.fields[tag]
	return fi, ok
}

// Kind resolves how tag is decoded. Declared tags follow their declaration,
// undeclared tags below 010 are fixed and everything else is variable.
func (m *Mapper) Kind(tag string) FieldKind {
	if fi, ok := m.fields[tag]; ok {
		return fi.Kind()
	}
	if tag < controlFieldTagMax {
		return FixedKind
	}
	return VariableKind
}

// Tags returns the declared tags in ascending order.
func (m *Mapper) Tags() []string {
	tags := make([]string, 0, len(m.fields))
	for t := range m.fields {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
