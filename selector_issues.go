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

// IssuanceType is the kind of an issue. Values outside the known constants are kept as they are.
type IssuanceType string

const (
	IssuanceUnit   IssuanceType = "Unit"
	IssuanceVolume IssuanceType = "Volume"
	IssuanceBundle IssuanceType = "Bundle"
)

// Known reports if t is one of the known issuance types.
func (t IssuanceType) Known() bool {
	switch t {
	case IssuanceUnit, IssuanceVolume, IssuanceBundle:
		return true
	}
	return false
}

// Issue is one issue record (an item with its own barcode) of a bibliographic record.
type Issue struct {
	Barcode      string
	IssuanceType IssuanceType
	VolumeNumber string
	VolumeYear   string
	Bundle       string

	field *VariableField
}

// Selection gives access to every subfield of the underlying field.
func (i *Issue) Selection() SubfieldSelection {
	return SubfieldSelection{field: i.field}
}

// IssuesSelector reads issue records as configured by the context's IssueMapping.
type IssuesSelector struct {
	fields  VariableFields
	mapping IssueMapping
}

// Issues returns a selector for the record's issues.
func (r *Record) Issues() IssuesSelector {
	return IssuesSelector{fields: r.variable, mapping: r.ctx.IssueMapping()}
}

// All returns every issue in field order.
func (s IssuesSelector) All() []*Issue {
	var issues []*Issue
	for _, f := range s.fields[s.mapping.Tag] {
		if f != nil {
			issues = append(issues, s.newIssue(f))
		}
	}
	return issues
}

// FindByBarcode returns the first issue with the given barcode.
func (s IssuesSelector) FindByBarcode(barcode string) (*Issue, bool) {
	for _, f := range s.fields[s.mapping.Tag] {
		if f == nil {
			continue
		}
		if v := f.Subfields[s.mapping.Barcode]; len(v) > 0 && v[0] == barcode {
			return s.newIssue(f), true
		}
	}
	return nil, false
}

func (s IssuesSelector) newIssue(f *VariableField) *Issue {
	first := func(code string) string {
		if code == "" {
			return ""
		}
		if v := f.Subfields[code]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	return &Issue{
		Barcode:      first(s.mapping.Barcode),
		IssuanceType: IssuanceType(first(s.mapping.IssuanceType)),
		VolumeNumber: first(s.mapping.VolumeNumber),
		VolumeYear:   first(s.mapping.VolumeYear),
		Bundle:       first(s.mapping.Bundle),
		field:        f,
	}
}
