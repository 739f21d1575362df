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
	"fmt"
	"sort"
	"strings"
)

const skipTarget = "skip"

// TagAlias remaps a raw tag. Skip drops the field. With Code set the whole field content is
// collapsed into that subfield of Tag.
type TagAlias struct {
	Tag  string
	Code string
	Skip bool
}

// ParseTagAlias parses "skip", "NNN" or "NNN$c".
func ParseTagAlias(target string) (TagAlias, error) {
	target = strings.TrimSpace(target)
	if strings.EqualFold(target, skipTarget) {
		return TagAlias{Skip: true}, nil
	}
	tag, code, hasCode := strings.Cut(target, "$")
	a := TagAlias{Tag: tag, Code: code}
	if hasCode && code == "" {
		return a, fmt.Errorf("gomarc: missing subfield code in alias target '%s'", target)
	}
	return a, a.validate()
}

func (a TagAlias) validate() error {
	if a.Skip {
		return nil
	}
	if !IsValidTag(a.Tag) {
		return fmt.Errorf("gomarc: alias target tag '%s' must be three digits", a.Tag)
	}
	if a.Code != "" && !IsValidSubfieldCode(a.Code) {
		return fmt.Errorf("gomarc: invalid alias subfield code '%s'", a.Code)
	}
	return nil
}

func (a TagAlias) String() string {
	switch {
	case a.Skip:
		return skipTarget
	case a.Code != "":
		return a.Tag + "$" + a.Code
	}
	return a.Tag
}

// IssueMapping tells which tag holds issue records and which subfields carry their properties.
// Optional subfields are left empty when not used.
type IssueMapping struct {
	Tag          string `mapstructure:"tag"`
	Barcode      string `mapstructure:"barcode"`
	IssuanceType string `mapstructure:"issuance_type"`
	VolumeNumber string `mapstructure:"volume_number"`
	VolumeYear   string `mapstructure:"volume_year"`
	Bundle       string `mapstructure:"bundle"`
}

func (m IssueMapping) validate() error {
	if !IsValidTag(m.Tag) {
		return newMappingErrorf(m.Tag, "issue tag must be three digits")
	}
	required := map[string]string{"barcode": m.Barcode, "issuance type": m.IssuanceType}
	optional := map[string]string{"volume number": m.VolumeNumber, "volume year": m.VolumeYear, "bundle": m.Bundle}
	for name, code := range required {
		if !IsValidSubfieldCode(code) {
			return newMappingErrorf(m.Tag, "invalid issue %s subfield code '%s'", name, code)
		}
	}
	for name, code := range optional {
		if code != "" && !IsValidSubfieldCode(code) {
			return newMappingErrorf(m.Tag, "invalid issue %s subfield code '%s'", name, code)
		}
	}
	return nil
}

// LocalFieldMapping gives a local field a name and its subfield codes names.
type LocalFieldMapping struct {
	Tag string `mapstructure:"tag"`
	// Subfields maps subfield names to codes.
	Subfields map[string]string `mapstructure:"subfields"`
}

// Context is the configuration used to decode and interpret records.
//
// A Context is immutable once created and may be shared by concurrent decoders.
type Context struct {
	mapper             *Mapper
	aliases            map[string]TagAlias
	issueMapping       IssueMapping
	localFields        map[string]LocalFieldMapping
	mandatoryFields    []string
	ignoreUnknownTags  bool
	dropUnmappedFields bool
	codec              *contentCodec
}

// NewContext creates a Context from the defaults modified by opts.
func NewContext(opts ...Option) (*Context, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}

	c := &Context{
		mapper:             o.mapper,
		aliases:            make(map[string]TagAlias, len(o.aliases)+len(o.skipTags)),
		issueMapping:       o.issueMapping,
		localFields:        make(map[string]LocalFieldMapping, len(o.localFields)),
		mandatoryFields:    append([]string(nil), o.mandatoryFields...),
		ignoreUnknownTags:  o.ignoreUnknownTags,
		dropUnmappedFields: o.dropUnmappedFields,
	}

	if c.mapper == nil {
		m, err := NewMapper(o.mapping)
		if err != nil {
			return nil, err
		}
		c.mapper = m
	}

	for tag, alias := range o.aliases {
		if tag == "" {
			return nil, newMappingErrorf("", "empty alias source tag")
		}
		if err := alias.validate(); err != nil {
			return nil, newMappingErrorf(tag, "%v", err)
		}
		c.aliases[tag] = alias
	}
	for _, tag := range o.skipTags {
		c.aliases[tag] = TagAlias{Skip: true}
	}

	if err := c.issueMapping.validate(); err != nil {
		return nil, err
	}

	for name, lf := range o.localFields {
		if !IsValidTag(lf.Tag) {
			return nil, newMappingErrorf(lf.Tag, "local field '%s' tag must be three digits", name)
		}
		subfields := make(map[string]string, len(lf.Subfields))
		for sfName, code := range lf.Subfields {
			if !IsValidSubfieldCode(code) {
				return nil, newMappingErrorf(lf.Tag, "local field '%s' has invalid subfield code '%s'", name, code)
			}
			subfields[sfName] = code
		}
		c.localFields[name] = LocalFieldMapping{Tag: lf.Tag, Subfields: subfields}
	}

	for _, tag := range c.mandatoryFields {
		if !IsValidTag(tag) {
			return nil, newMappingErrorf(tag, "mandatory tag must be three digits")
		}
	}

	codec, err := lookupEncoding(o.encoding)
	if err != nil {
		return nil, err
	}
	c.codec = codec

	return c, nil
}

// DefaultContext returns a new Context with the default configuration.
func DefaultContext() *Context {
	c, err := NewContext()
	if err != nil {
		panic(err)
	}
	return c
}

func contextOrDefault(c *Context) *Context {
	if c == nil {
		return DefaultContext()
	}
	return c
}

// Mapper returns the field mapper.
func (c *Context) Mapper() *Mapper {
	return c.mapper
}

// FieldInfoFor returns the mapping of tag, if any.
func (c *Context) FieldInfoFor(tag string) (FieldInfo, bool) {
	return c.mapper.FieldInfoFor(tag)
}

// AliasFor returns the alias of tag, if any.
func (c *Context) AliasFor(tag string) (TagAlias, bool) {
	a, ok := c.aliases[tag]
	return a, ok
}

// IssueMapping returns the issue mapping.
func (c *Context) IssueMapping() IssueMapping {
	return c.issueMapping
}

// LocalField returns the local field mapping registered under name.
func (c *Context) LocalField(name string) (LocalFieldMapping, bool) {
	lf, ok := c.localFields[name]
	return lf, ok
}

// LocalFieldNames returns the names of all local fields in ascending order.
func (c *Context) LocalFieldNames() []string {
	names := make([]string, 0, len(c.localFields))
	for n := range c.localFields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// MandatoryFields returns the tags every record must contain.
func (c *Context) MandatoryFields() []string {
	return append([]string(nil), c.mandatoryFields...)
}

// IgnoreUnknownTags reports if fields with invalid tags are skipped instead of failing.
func (c *Context) IgnoreUnknownTags() bool {
	return c.ignoreUnknownTags
}

// DropUnmappedFields reports if variable fields without a mapping are dropped.
func (c *Context) DropUnmappedFields() bool {
	return c.dropUnmappedFields
}

// Encoding returns the name of the content encoding.
func (c *Context) Encoding() string {
	return c.codec.name
}

// missingMandatory returns the mandatory tags absent from both field maps.
func (c *Context) missingMandatory(fixed FixedFields, variable VariableFields) []string {
	var missing []string
	for _, tag := range c.mandatoryFields {
		if !fixed.Has(tag) && !variable.Has(tag) {
			missing = append(missing, tag)
		}
	}
	return missing
}
