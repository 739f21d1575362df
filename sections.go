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

	log "github.com/sirupsen/logrus"
)

// SectionEntry is one mapped variable field instance in the sections view.
// Subfields hold a string for non-repeatable subfields and a []string for repeatable ones.
type SectionEntry struct {
	Ind1      string                 `json:"ind1,omitempty" yaml:"ind1,omitempty"`
	Ind2      string                 `json:"ind2,omitempty" yaml:"ind2,omitempty"`
	Subfields map[string]interface{} `json:"subfields" yaml:"subfields"`
}

// Sections is the named application view of a record: section -> field -> value.
// A value is a string for fixed fields, a *SectionEntry for non-repeatable variable fields
// and a []*SectionEntry for repeatable variable fields.
type Sections map[string]map[string]interface{}

// Names returns the section names in ascending order.
func (s Sections) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Sections builds the named view of the record through the context's mapper.
// Tags without a mapping are left out.
func (r *Record) Sections() Sections {
	result := Sections{}
	put := func(section, field string, v interface{}) {
		s, ok := result[section]
		if !ok {
			s = map[string]interface{}{}
			result[section] = s
		}
		s[field] = v
	}

	mapper := r.ctx.Mapper()
	for _, tag := range r.fixed.Tags() {
		fi, ok := mapper.FieldInfoFor(tag)
		if !ok || fi.Kind() != FixedKind {
			continue
		}
		section, field := fi.Target()
		put(section, field, r.fixed[tag])
	}

	for _, tag := range r.variable.Tags() {
		fi, ok := mapper.FieldInfoFor(tag)
		if !ok {
			continue
		}
		vfi, ok := fi.(*VariableFieldInfo)
		if !ok {
			continue
		}
		var entries []*SectionEntry
		for _, f := range r.variable[tag] {
			if f != nil {
				entries = append(entries, sectionEntry(vfi, f))
			}
		}
		if len(entries) == 0 {
			continue
		}
		if vfi.Repeatable {
			put(vfi.Section, vfi.Field, entries)
		} else {
			if len(entries) > 1 {
				log.Warnf("field %s is not repeatable, keeping the first of %d instances", tag, len(entries))
			}
			put(vfi.Section, vfi.Field, entries[0])
		}
	}
	return result
}

func sectionEntry(info *VariableFieldInfo, f *VariableField) *SectionEntry {
	e := &SectionEntry{Ind1: f.Ind1, Ind2: f.Ind2, Subfields: make(map[string]interface{}, len(f.Subfields))}
	for _, code := range f.Codes() {
		values := f.Subfields[code]
		if len(values) == 0 {
			continue
		}
		sf, ok := info.Subfields[code]
		if !ok {
			// fields declaring no subfields keep every code under its own name
			e.Subfields[code] = append([]string(nil), values...)
			continue
		}
		if sf.Repeatable {
			e.Subfields[sf.Subfield] = append([]string(nil), values...)
		} else {
			e.Subfields[sf.Subfield] = values[0]
		}
	}
	return e
}
