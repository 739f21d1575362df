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
	"strings"
)

const (
	maxFieldLength = 9999
	maxFieldOffset = 99999
)

// DirectoryEntry locates one field in the data area of a record.
type DirectoryEntry struct {
	Tag string
	// Length of the field including its terminator.
	Length int
	// Offset relative to the base address of data.
	Offset int
}

func (e DirectoryEntry) String() string {
	return fmt.Sprintf("%s%04d%05d", e.Tag, e.Length, e.Offset)
}

// ParseDirectory decodes a directory without its terminator.
// Tags are returned as they are found, resolving and validating them is left to the caller.
func ParseDirectory(b []byte) ([]DirectoryEntry, error) {
	if len(b)%DirectoryEntryLength != 0 {
		return nil, newFormatErrorf("directory length %d is not a multiple of %d", len(b), DirectoryEntryLength)
	}
	if i := nonASCIIIndex(b); i >= 0 {
		return nil, newFormatErrorf("non-ASCII byte in directory at position %d", i)
	}

	entries := make([]DirectoryEntry, 0, len(b)/DirectoryEntryLength)
	for start := 0; start < len(b); start += DirectoryEntryLength {
		e := string(b[start : start+DirectoryEntryLength])
		length, err := parseLeaderNumber(e[3:7])
		if err != nil {
			return nil, newWrappedFormatError(fmt.Sprintf("invalid length in directory entry %d", len(entries)), err)
		}
		offset, err := parseLeaderNumber(e[7:12])
		if err != nil {
			return nil, newWrappedFormatError(fmt.Sprintf("invalid offset in directory entry %d", len(entries)), err)
		}
		entries = append(entries, DirectoryEntry{Tag: e[0:3], Length: length, Offset: offset})
	}
	return entries, nil
}

// EncodeDirectory encodes entries followed by the field terminator.
func EncodeDirectory(entries []DirectoryEntry) ([]byte, error) {
	sb := strings.Builder{}
	sb.Grow(len(entries)*DirectoryEntryLength + 1)
	for _, e := range entries {
		if len(e.Tag) != 3 || nonASCIIIndex([]byte(e.Tag)) >= 0 {
			return nil, newFormatErrorf("directory tag '%s' must be three ASCII characters", e.Tag)
		}
		if e.Length < 0 || e.Length > maxFieldLength {
			return nil, newFormatErrorf("field %s length %d does not fit in directory", e.Tag, e.Length)
		}
		if e.Offset < 0 || e.Offset > maxFieldOffset {
			return nil, newFormatErrorf("field %s offset %d does not fit in directory", e.Tag, e.Offset)
		}
		sb.WriteString(e.String())
	}
	sb.WriteByte(FieldTerminator)
	return []byte(sb.String()), nil
}
