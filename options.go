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

type contextOptions struct {
	mapping            MappingTable
	mapper             *Mapper
	aliases            map[string]TagAlias
	skipTags           []string
	issueMapping       IssueMapping
	localFields        map[string]LocalFieldMapping
	mandatoryFields    []string
	ignoreUnknownTags  bool
	dropUnmappedFields bool
	encoding           string
}

// Option configures a Context.
type Option interface {
	apply(*contextOptions)
}

// EmptyOption does not alter the configuration. It can be embedded in
// another structure to build custom options.
type EmptyOption struct{}

func (EmptyOption) apply(*contextOptions) {}

// funcOption wraps a function that modifies contextOptions into an
// implementation of the Option interface.
type funcOption struct {
	f func(*contextOptions)
}

func (fo *funcOption) apply(po *contextOptions) {
	fo.f(po)
}

func newFuncOption(f func(*contextOptions)) *funcOption {
	return &funcOption{
		f: f,
	}
}

func defaultOptions() contextOptions {
	return contextOptions{
		mapping: DefaultMappingTable(),
		aliases: map[string]TagAlias{
			"FMT": {Tag: "990", Code: "a"},
			"LDR": {Skip: true},
			"MZK": {Tag: "991"},
		},
		issueMapping: IssueMapping{
			Tag:          "996",
			Barcode:      "b",
			IssuanceType: "s",
			VolumeNumber: "v",
			VolumeYear:   "y",
			Bundle:       "i",
		},
		localFields: map[string]LocalFieldMapping{
			"location": {Tag: "910", Subfields: map[string]string{"sigla": "a", "signature": "b"}},
		},
		mandatoryFields:   []string{"001", "005", "008"},
		ignoreUnknownTags: true,
		encoding:          DefaultEncoding,
	}
}

// WithMappingTable sets the table used to build the field mapper.
// defaults to DefaultMappingTable()
func WithMappingTable(table MappingTable) Option {
	return newFuncOption(func(o *contextOptions) {
		o.mapping = table
		o.mapper = nil
	})
}

// WithMapper sets an already built field mapper. It takes precedence over WithMappingTable.
func WithMapper(mapper *Mapper) Option {
	return newFuncOption(func(o *contextOptions) {
		o.mapper = mapper
	})
}

// WithTagAliases replaces all tag aliases.
// defaults to FMT -> 990$a, LDR -> skip and MZK -> 991
func WithTagAliases(aliases map[string]TagAlias) Option {
	return newFuncOption(func(o *contextOptions) {
		o.aliases = make(map[string]TagAlias, len(aliases))
		for k, v := range aliases {
			o.aliases[k] = v
		}
	})
}

// WithTagAlias adds or replaces the alias of a single tag.
func WithTagAlias(tag string, alias TagAlias) Option {
	return newFuncOption(func(o *contextOptions) {
		aliases := make(map[string]TagAlias, len(o.aliases)+1)
		for k, v := range o.aliases {
			aliases[k] = v
		}
		aliases[tag] = alias
		o.aliases = aliases
	})
}

// WithSkipTags adds tags which are ignored entirely while decoding.
func WithSkipTags(tags ...string) Option {
	return newFuncOption(func(o *contextOptions) {
		o.skipTags = append(append([]string(nil), o.skipTags...), tags...)
	})
}

// WithIssueMapping sets which tag and subfields hold issue records.
// defaults to 996 with barcode in b, issuance type in s, volume number in v, volume year in y and bundle in i
func WithIssueMapping(mapping IssueMapping) Option {
	return newFuncOption(func(o *contextOptions) {
		o.issueMapping = mapping
	})
}

// WithLocalFields replaces the local field mapping.
// defaults to location -> 910 with sigla in a and signature in b
func WithLocalFields(fields map[string]LocalFieldMapping) Option {
	return newFuncOption(func(o *contextOptions) {
		o.localFields = make(map[string]LocalFieldMapping, len(fields))
		for k, v := range fields {
			o.localFields[k] = v
		}
	})
}

// WithMandatoryFields sets the tags every record must contain.
// defaults to 001, 005 and 008
func WithMandatoryFields(tags ...string) Option {
	return newFuncOption(func(o *contextOptions) {
		o.mandatoryFields = append([]string(nil), tags...)
	})
}

// WithIgnoreUnknownTags decides if fields with tags that are not three digits are skipped or make decoding fail.
// defaults to true
func WithIgnoreUnknownTags(ignore bool) Option {
	return newFuncOption(func(o *contextOptions) {
		o.ignoreUnknownTags = ignore
	})
}

// WithDropUnmappedFields decides if variable fields without a mapping are dropped while decoding.
// defaults to false
func WithDropUnmappedFields(drop bool) Option {
	return newFuncOption(func(o *contextOptions) {
		o.dropUnmappedFields = drop
	})
}

// WithEncoding sets the encoding of field content. Any name known to the WHATWG or IANA encoding
// registries is accepted.
// defaults to utf-8
func WithEncoding(name string) Option {
	return newFuncOption(func(o *contextOptions) {
		o.encoding = name
	})
}
