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

// Section names used by the default mapping table.
const (
	SectionControlFields   = "control_fields"
	SectionNumbersAndCodes = "numbers_and_codes"
	SectionTitleRelated    = "title_related"
	SectionElectronic      = "electronic_location"
	SectionLocal           = "local"
	SectionIssues          = "issues"
)

// DefaultMappingTable returns a fresh copy of the built-in mapping table.
func DefaultMappingTable() MappingTable {
	sf := func(name string) SubfieldEntry { return SubfieldEntry{Subfield: name} }
	rsf := func(name string) SubfieldEntry { return SubfieldEntry{Subfield: name, Repeatable: true} }

	return MappingTable{
		"001": {Section: SectionControlFields, Field: "control_number"},
		"003": {Section: SectionControlFields, Field: "control_number_identifier"},
		"005": {Section: SectionControlFields, Field: "latest_transaction"},
		"008": {Section: SectionControlFields, Field: "fixed_length_data_elements"},
		"015": {Section: SectionNumbersAndCodes, Field: "nbn", Repeatable: true, Subfields: map[string]SubfieldEntry{
			"a": rsf("active"),
			"z": rsf("canceled"),
			"q": rsf("qualifying_information"),
			"2": sf("source"),
		}},
		"020": {Section: SectionNumbersAndCodes, Field: "isbn", Repeatable: true, Subfields: map[string]SubfieldEntry{
			"a": sf("active"),
			"c": sf("terms_of_availability"),
			"q": rsf("qualifying_information"),
			"z": rsf("canceled"),
		}},
		"022": {Section: SectionNumbersAndCodes, Field: "issn", Repeatable: true, Subfields: map[string]SubfieldEntry{
			"a": sf("active"),
			"l": sf("linking"),
			"y": rsf("incorrect"),
			"z": rsf("canceled"),
			"2": sf("source"),
		}},
		"245": {Section: SectionTitleRelated, Field: "title_statement", Subfields: map[string]SubfieldEntry{
			"a": sf("title"),
			"b": sf("subtitle"),
			"c": sf("statement_of_responsibility"),
			"f": sf("inclusive_dates"),
			"g": sf("bulk_dates"),
			"h": sf("medium"),
			"k": rsf("form"),
			"n": rsf("part_number"),
			"p": rsf("part_name"),
			"s": sf("version"),
			"6": sf("linkage"),
			"8": rsf("field_link"),
		}},
		"856": {Section: SectionElectronic, Field: "electronic_location", Repeatable: true, Subfields: map[string]SubfieldEntry{
			"u": rsf("url"),
			"y": rsf("link_text"),
			"z": rsf("public_note"),
			"q": sf("format_type"),
			"3": sf("materials_specified"),
		}},
		"910": {Section: SectionLocal, Field: "location", Repeatable: true, Subfields: map[string]SubfieldEntry{
			"a": sf("sigla"),
			"b": rsf("signature"),
		}},
		"990": {Section: SectionLocal, Field: "format", Repeatable: true, Subfields: map[string]SubfieldEntry{
			"a": sf("format"),
		}},
		"991": {Section: SectionLocal, Field: "local_data", Repeatable: true, Subfields: map[string]SubfieldEntry{}},
		"996": {Section: SectionIssues, Field: "issues", Repeatable: true, Subfields: map[string]SubfieldEntry{
			"b": sf("barcode"),
			"s": sf("issuance_type"),
			"v": sf("volume_number"),
			"y": sf("volume_year"),
			"i": sf("bundle"),
		}},
	}
}
