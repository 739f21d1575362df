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

// NumbersAndCodesSelector gives access to standard numbers: national bibliography numbers, ISBN and ISSN.
type NumbersAndCodesSelector struct {
	selection FieldSelection
}

// NumbersAndCodes returns a selector for the record's numbers and codes.
func (r *Record) NumbersAndCodes() NumbersAndCodesSelector {
	return NumbersAndCodesSelector{selection: r.Fields()}
}

// Nbn returns all active national bibliography numbers (015$a).
func (n NumbersAndCodesSelector) Nbn() []string {
	return n.selection.Values(NbnActiveSelector)
}

func (n NumbersAndCodesSelector) Isbn() IsbnSelector {
	return IsbnSelector{selection: n.selection}
}

func (n NumbersAndCodesSelector) Issn() IssnSelector {
	return IssnSelector{selection: n.selection}
}

// Isxn returns the active ISBNs, or the active ISSNs if there are no ISBNs.
func (n NumbersAndCodesSelector) Isxn() []string {
	if isbn := n.Isbn().Active(); len(isbn) > 0 {
		return isbn
	}
	return n.Issn().Active()
}

type IsbnSelector struct {
	selection FieldSelection
}

// Active returns 020$a from all instances.
func (i IsbnSelector) Active() []string {
	return i.selection.Values(IsbnActiveSelector)
}

// TermsOfAvailability returns 020$c from all instances.
func (i IsbnSelector) TermsOfAvailability() []string {
	return i.selection.Values(IsbnTermsOfAvailabilitySelector)
}

type IssnSelector struct {
	selection FieldSelection
}

// Active returns 022$a from all instances.
func (i IssnSelector) Active() []string {
	return i.selection.Values(IssnActiveSelector)
}
