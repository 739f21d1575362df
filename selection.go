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

// FieldSelector addresses a tag and optionally one of its subfield codes.
type FieldSelector struct {
	Tag  string
	Code string
}

// Predefined selectors for commonly used subfields.
var (
	NbnActiveSelector               = FieldSelector{Tag: "015", Code: "a"}
	IsbnActiveSelector              = FieldSelector{Tag: "020", Code: "a"}
	IsbnTermsOfAvailabilitySelector = FieldSelector{Tag: "020", Code: "c"}
	IssnActiveSelector              = FieldSelector{Tag: "022", Code: "a"}
	TitleSelector                   = FieldSelector{Tag: "245", Code: "a"}
	SubtitleSelector                = FieldSelector{Tag: "245", Code: "b"}
	ElectronicLocationURLSelector   = FieldSelector{Tag: "856", Code: "u"}
	ElectronicLinkTextSelector      = FieldSelector{Tag: "856", Code: "y"}
)

// SubfieldSelection is a read-only view of one variable field instance.
type SubfieldSelection struct {
	field *VariableField
}

// Ind1 returns the first indicator, "" if blank.
func (s SubfieldSelection) Ind1() string {
	return s.field.Ind1
}

// Ind2 returns the second indicator, "" if blank.
func (s SubfieldSelection) Ind2() string {
	return s.field.Ind2
}

// First returns the first value of code.
func (s SubfieldSelection) First(code string) (string, bool) {
	values := s.field.Subfields[code]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// All returns every value of code in field order.
func (s SubfieldSelection) All(code string) []string {
	return append([]string(nil), s.field.Subfields[code]...)
}

// Codes returns the subfield codes present in ascending order.
func (s SubfieldSelection) Codes() []string {
	return s.field.Codes()
}

// FieldSelection queries variable fields by tag and subfield code.
// A missing field and a missing code both give an empty result.
type FieldSelection struct {
	fields VariableFields
}

// NewFieldSelection returns a selection over fields.
func NewFieldSelection(fields VariableFields) FieldSelection {
	return FieldSelection{fields: fields}
}

// First returns the first instance of the selector's tag.
func (fs FieldSelection) First(sel FieldSelector) (SubfieldSelection, bool) {
	for _, f := range fs.fields[sel.Tag] {
		if f != nil {
			return SubfieldSelection{field: f}, true
		}
	}
	return SubfieldSelection{}, false
}

// All returns every instance of the selector's tag.
func (fs FieldSelection) All(sel FieldSelector) []SubfieldSelection {
	var result []SubfieldSelection
	for _, f := range fs.fields[sel.Tag] {
		if f != nil {
			result = append(result, SubfieldSelection{field: f})
		}
	}
	return result
}

// FirstValue returns the first value of the selector's code in the first instance.
func (fs FieldSelection) FirstValue(sel FieldSelector) (string, bool) {
	if f, ok := fs.First(sel); ok {
		return f.First(sel.Code)
	}
	return "", false
}

// AllValues returns every value of the selector's code in the first instance.
func (fs FieldSelection) AllValues(sel FieldSelector) []string {
	if f, ok := fs.First(sel); ok {
		return f.All(sel.Code)
	}
	return nil
}

// FirstValueAllFields returns the first value of the selector's code from every instance that has one.
func (fs FieldSelection) FirstValueAllFields(sel FieldSelector) []string {
	var result []string
	for _, f := range fs.All(sel) {
		if v, ok := f.First(sel.Code); ok && v != "" {
			result = append(result, v)
		}
	}
	return result
}

// AllValuesAllFields returns the values of the selector's code per instance.
func (fs FieldSelection) AllValuesAllFields(sel FieldSelector) [][]string {
	var result [][]string
	for _, f := range fs.All(sel) {
		result = append(result, f.All(sel.Code))
	}
	return result
}

// Values returns the values of the selector's code from all instances, flattened in field order.
func (fs FieldSelection) Values(sel FieldSelector) []string {
	var result []string
	for _, f := range fs.fields[sel.Tag] {
		if f != nil {
			result = append(result, f.Subfields[sel.Code]...)
		}
	}
	return result
}

// Fields returns a generic selection over the record's variable fields.
func (r *Record) Fields() FieldSelection {
	return FieldSelection{fields: r.variable}
}
