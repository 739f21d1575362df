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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	sampleLeader = "00086nam  2200049   4500"
	sampleRecord = sampleLeader +
		"001000500000" +
		"245003000005" +
		"\x1e1234" +
		"\x1e10\x1faTest Title\x1fbTest Subtitle\x1d"
)

type rawField struct {
	tag     string
	content string
}

// dataField returns indicators followed by delimited subfields given as code, value pairs.
func dataField(ind1, ind2 string, codeValues ...string) string {
	sb := strings.Builder{}
	sb.WriteString(ind1)
	sb.WriteString(ind2)
	for i := 0; i+1 < len(codeValues); i += 2 {
		sb.WriteByte(SubfieldDelimiter)
		sb.WriteString(codeValues[i])
		sb.WriteString(codeValues[i+1])
	}
	return sb.String()
}

func buildRecord(t *testing.T, fields ...rawField) []byte {
	t.Helper()
	rb := &recordBuilder{}
	for _, f := range fields {
		require.NoError(t, rb.addField(f.tag, []byte(f.content)))
	}
	data, _, err := rb.build(sampleLeader)
	require.NoError(t, err)
	return data
}

// mandatoryFields is a complete set of the default mandatory fields.
func mandatoryFields() []rawField {
	return []rawField{
		{"001", "1234"},
		{"005", "20230101123456.0"},
		{"008", "230101s2023    xx            000 0 nor d"},
	}
}

func newTestContext(t *testing.T, opts ...Option) *Context {
	t.Helper()
	ctx, err := NewContext(opts...)
	require.NoError(t, err)
	return ctx
}
