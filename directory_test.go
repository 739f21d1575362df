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

func TestParseDirectory(t *testing.T) {
	tests := []struct {
		name      string
		directory string
		want      []DirectoryEntry
		wantErr   bool
	}{
		{"empty", "", []DirectoryEntry{}, false},
		{
			"two entries",
			"001000500000245003000005",
			[]DirectoryEntry{{Tag: "001", Length: 5, Offset: 0}, {Tag: "245", Length: 30, Offset: 5}},
			false,
		},
		{
			"tags are not validated",
			"FMT000400035",
			[]DirectoryEntry{{Tag: "FMT", Length: 4, Offset: 35}},
			false,
		},
		{"partial entry", "00100050000", nil, true},
		{"bad length", "0010x0500000", nil, true},
		{"bad offset", "00100050000x", nil, true},
		{"non-ASCII", "\xc3\xa6\x3000500000\x30", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDirectory([]byte(tt.directory))
			if tt.wantErr {
				var formatErr *FormatError
				assert.True(t, errors.As(err, &formatErr), "expected *FormatError, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeDirectory(t *testing.T) {
	entries := []DirectoryEntry{{Tag: "001", Length: 5, Offset: 0}, {Tag: "245", Length: 30, Offset: 5}}
	b, err := EncodeDirectory(entries)
	require.NoError(t, err)
	assert.Equal(t, "001000500000245003000005\x1e", string(b))

	parsed, err := ParseDirectory(b[:len(b)-1])
	require.NoError(t, err)
	assert.Equal(t, entries, parsed)
}

func TestEncodeDirectoryErrors(t *testing.T) {
	tests := []struct {
		name  string
		entry DirectoryEntry
	}{
		{"short tag", DirectoryEntry{Tag: "01", Length: 1}},
		{"length too large", DirectoryEntry{Tag: "245", Length: 10000}},
		{"offset too large", DirectoryEntry{Tag: "245", Length: 1, Offset: 100000}},
		{"negative length", DirectoryEntry{Tag: "245", Length: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeDirectory([]DirectoryEntry{tt.entry})
			var formatErr *FormatError
			assert.True(t, errors.As(err, &formatErr), "expected *FormatError, got %v", err)
		})
	}
}
