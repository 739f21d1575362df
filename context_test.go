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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultContext(t *testing.T) {
	ctx := DefaultContext()
	assert.Equal(t, []string{"001", "005", "008"}, ctx.MandatoryFields())
	assert.True(t, ctx.IgnoreUnknownTags())
	assert.False(t, ctx.DropUnmappedFields())
	assert.Equal(t, "utf-8", ctx.Encoding())
	assert.Equal(t, []string{"location"}, ctx.LocalFieldNames())
	assert.Equal(t, "996", ctx.IssueMapping().Tag)

	alias, ok := ctx.AliasFor("FMT")
	require.True(t, ok)
	assert.Equal(t, "990$a", alias.String())
	alias, ok = ctx.AliasFor("LDR")
	require.True(t, ok)
	assert.True(t, alias.Skip)
	alias, ok = ctx.AliasFor("MZK")
	require.True(t, ok)
	assert.Equal(t, "991", alias.String())
}

func TestContextOptions(t *testing.T) {
	ctx := newTestContext(t,
		WithTagAliases(map[string]TagAlias{"XYZ": {Tag: "500", Code: "a"}}),
		WithTagAlias("ABC", TagAlias{Tag: "501"}),
		WithSkipTags("600", "700"),
		WithMandatoryFields(),
		WithIgnoreUnknownTags(false),
		WithDropUnmappedFields(true),
		WithEncoding("ISO-8859-1"),
		WithLocalFields(map[string]LocalFieldMapping{"shelf": {Tag: "912", Subfields: map[string]string{"code": "c"}}}),
		EmptyOption{},
	)

	_, ok := ctx.AliasFor("FMT")
	assert.False(t, ok, "WithTagAliases replaces the defaults")
	alias, ok := ctx.AliasFor("XYZ")
	require.True(t, ok)
	assert.Equal(t, TagAlias{Tag: "500", Code: "a"}, alias)
	_, ok = ctx.AliasFor("ABC")
	assert.True(t, ok)
	alias, ok = ctx.AliasFor("700")
	require.True(t, ok)
	assert.True(t, alias.Skip)

	assert.Empty(t, ctx.MandatoryFields())
	assert.False(t, ctx.IgnoreUnknownTags())
	assert.True(t, ctx.DropUnmappedFields())
	assert.Equal(t, "iso-8859-1", ctx.Encoding())
	assert.Equal(t, []string{"shelf"}, ctx.LocalFieldNames())
}

func TestWithMapper(t *testing.T) {
	m, err := NewMapper(MappingTable{"100": {Section: "names", Field: "main_entry", Subfields: map[string]SubfieldEntry{}}})
	require.NoError(t, err)
	ctx := newTestContext(t, WithMapper(m))
	assert.Same(t, m, ctx.Mapper())
	_, ok := ctx.FieldInfoFor("245")
	assert.False(t, ok)
}

func TestNewContextErrors(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"invalid mapping", WithMappingTable(MappingTable{"1": {Section: "s", Field: "f"}})},
		{"invalid alias target", WithTagAlias("FMT", TagAlias{Tag: "99"})},
		{"empty alias source", WithTagAlias("", TagAlias{Tag: "990"})},
		{"invalid issue mapping", WithIssueMapping(IssueMapping{Tag: "996", Barcode: "bb", IssuanceType: "s"})},
		{"invalid issue tag", WithIssueMapping(IssueMapping{Tag: "9", Barcode: "b", IssuanceType: "s"})},
		{"invalid local field", WithLocalFields(map[string]LocalFieldMapping{"x": {Tag: "91"}})},
		{"invalid local code", WithLocalFields(map[string]LocalFieldMapping{"x": {Tag: "910", Subfields: map[string]string{"a": "AA"}}})},
		{"invalid mandatory tag", WithMandatoryFields("1")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewContext(tt.opt)
			var mappingErr *MappingError
			assert.True(t, errors.As(err, &mappingErr), "expected *MappingError, got %v", err)
		})
	}

	_, err := NewContext(WithEncoding("no-such-encoding"))
	assert.Error(t, err)
}

func TestParseTagAlias(t *testing.T) {
	tests := []struct {
		target  string
		want    TagAlias
		wantErr bool
	}{
		{"skip", TagAlias{Skip: true}, false},
		{"SKIP", TagAlias{Skip: true}, false},
		{"991", TagAlias{Tag: "991"}, false},
		{"990$a", TagAlias{Tag: "990", Code: "a"}, false},
		{" 990$a ", TagAlias{Tag: "990", Code: "a"}, false},
		{"990$", TagAlias{}, true},
		{"99", TagAlias{}, true},
		{"990$ab", TagAlias{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			got, err := ParseTagAlias(tt.target)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConcurrentDecoding(t *testing.T) {
	ctx := newTestContext(t, WithMandatoryFields("001"))
	done := make(chan error)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := RecordFromBytes([]byte(sampleRecord), ctx)
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		assert.NoError(t, <-done)
	}
}
