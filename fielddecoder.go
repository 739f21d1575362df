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
	"bytes"
	"strings"

	log "github.com/sirupsen/logrus"
)

// fieldDecoder applies alias, tag and mapping rules to raw fields and collects the result.
// It is shared by the MRC and XML decoders so both produce identical field maps.
type fieldDecoder struct {
	ctx    *Context
	result *Structured
}

func newFieldDecoder(ctx *Context) *fieldDecoder {
	return &fieldDecoder{ctx: ctx, result: newStructured()}
}

// resolveTag resolves aliases and validates the tag. ok is false if the field should be ignored.
func (d *fieldDecoder) resolveTag(rawTag string) (tag string, code string, ok bool, err error) {
	tag = rawTag
	if alias, found := d.ctx.AliasFor(rawTag); found {
		if alias.Skip {
			log.Debugf("skipping field %s", rawTag)
			return "", "", false, nil
		}
		log.Debugf("field %s is an alias of %s", rawTag, alias)
		tag, code = alias.Tag, alias.Code
	}
	if !IsValidTag(tag) {
		if d.ctx.ignoreUnknownTags {
			log.Debugf("ignoring field with unknown tag '%s'", tag)
			return "", "", false, nil
		}
		return "", "", false, newUnknownTagError(tag)
	}
	return tag, code, true, nil
}

// addAliased stores text as the single subfield of a synthetic field. Blank text is ignored.
func (d *fieldDecoder) addAliased(tag, code, text string) bool {
	if strings.TrimSpace(text) == "" {
		log.Debugf("ignoring empty aliased field %s$%s", tag, code)
		return false
	}
	vf := newVariableField(blankIndicator, blankIndicator)
	vf.addSubfield(code, text)
	d.result.VariableFields.add(tag, vf)
	return true
}

// add decodes the raw content of a field. It reports if anything was stored.
func (d *fieldDecoder) add(tag string, raw []byte) bool {
	if d.ctx.mapper.Kind(tag) == FixedKind {
		if d.result.FixedFields.Has(tag) {
			log.Debugf("repeated fixed field %s, keeping last value", tag)
		}
		d.result.FixedFields[tag] = d.ctx.codec.decode(raw)
		return true
	}

	var info *VariableFieldInfo
	if fi, ok := d.ctx.FieldInfoFor(tag); ok {
		info = fi.(*VariableFieldInfo)
	} else if d.ctx.dropUnmappedFields {
		log.Debugf("dropping unmapped field %s", tag)
		return false
	}

	d.result.VariableFields.add(tag, d.parseVariable(tag, raw, info))
	return true
}

func (d *fieldDecoder) parseVariable(tag string, raw []byte, info *VariableFieldInfo) *VariableField {
	ind1, ind2 := blankIndicator, blankIndicator
	if len(raw) > 0 {
		ind1 = d.indicator(tag, raw[0])
	}
	if len(raw) > 1 {
		ind2 = d.indicator(tag, raw[1])
	}
	vf := newVariableField(ind1, ind2)
	if len(raw) <= 2 {
		return vf
	}

	for _, segment := range bytes.Split(raw[2:], []byte{SubfieldDelimiter}) {
		if len(segment) == 0 {
			continue
		}
		code := string(segment[0:1])
		if !IsValidSubfieldCode(code) {
			log.Warnf("field %s: dropping subfield with invalid code 0x%02x", tag, segment[0])
			continue
		}
		if info != nil && !info.HasSubfield(code) {
			log.Debugf("field %s: dropping unmapped subfield '%s'", tag, code)
			continue
		}
		vf.addSubfield(code, d.ctx.codec.decode(segment[1:]))
	}
	return vf
}

func (d *fieldDecoder) indicator(tag string, b byte) string {
	ind := string([]byte{b})
	if !IsValidIndicator(ind) {
		log.Warnf("field %s: invalid indicator 0x%02x treated as blank", tag, b)
		return blankIndicator
	}
	return ind
}

// finish checks mandatory fields and returns the result.
func (d *fieldDecoder) finish() (*Structured, error) {
	if missing := d.ctx.missingMandatory(d.result.FixedFields, d.result.VariableFields); len(missing) > 0 {
		return nil, newMissingMandatoryFieldError(missing)
	}
	return d.result, nil
}
