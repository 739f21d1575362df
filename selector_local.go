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

// LocalFieldsSelector reads local fields by the names given in the context's local field mapping.
type LocalFieldsSelector struct {
	selection FieldSelection
	ctx       *Context
}

// LocalFields returns a selector for the record's local fields.
func (r *Record) LocalFields() LocalFieldsSelector {
	return LocalFieldsSelector{selection: r.Fields(), ctx: r.ctx}
}

// Get returns the values of a named subfield of a named local field from all instances.
// Unknown names give an empty result.
func (l LocalFieldsSelector) Get(field, subfield string) []string {
	mapping, ok := l.ctx.LocalField(field)
	if !ok {
		return nil
	}
	code, ok := mapping.Subfields[subfield]
	if !ok {
		return nil
	}
	return l.selection.Values(FieldSelector{Tag: mapping.Tag, Code: code})
}

// Has reports if any instance of the named local field has the named subfield.
func (l LocalFieldsSelector) Has(field, subfield string) bool {
	return len(l.Get(field, subfield)) > 0
}
