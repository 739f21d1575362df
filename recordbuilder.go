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
)

// recordBuilder accumulates fields and their directory entries and assembles a MARC21 byte stream.
type recordBuilder struct {
	entries    []DirectoryEntry
	fields     [][]byte
	dataLength int // sum of field lengths including one terminator each
}

// addField appends a field. The record length is checked on every call so oversized records fail early.
func (rb *recordBuilder) addField(tag string, data []byte) error {
	if len(tag) != 3 {
		return newFormatErrorf("invalid tag: '%s'", tag)
	}
	length := len(data) + 1
	if length > maxFieldLength {
		return newFormatErrorf("field %s is %d bytes, maximum is %d", tag, length, maxFieldLength)
	}
	if projected := projectedLength(len(rb.entries)+1, rb.dataLength+length); projected > MaxRecordLength {
		return newRecordTooLargeError(projected)
	}

	rb.entries = append(rb.entries, DirectoryEntry{Tag: tag, Length: length, Offset: rb.dataLength})
	rb.fields = append(rb.fields, data)
	rb.dataLength += length
	return nil
}

// build assembles the record. Record length and base address in leaderText are replaced,
// all other leader positions are kept.
func (rb *recordBuilder) build(leaderText string) (data []byte, leader string, err error) {
	if len(leaderText) != LeaderLength {
		return nil, "", newFormatErrorf("invalid leader length: %d (expected %d)", len(leaderText), LeaderLength)
	}
	directory, err := EncodeDirectory(rb.entries)
	if err != nil {
		return nil, "", err
	}
	fields := bytes.Join(rb.fields, []byte{FieldTerminator})

	baseAddress := LeaderLength + len(directory)
	recordLength := baseAddress + len(fields) + 1
	if recordLength > MaxRecordLength {
		return nil, "", newRecordTooLargeError(recordLength)
	}
	leader = withLengths(leaderText, recordLength, baseAddress)

	buf := bytes.Buffer{}
	buf.Grow(recordLength)
	buf.WriteString(leader)
	buf.Write(directory)
	buf.Write(fields)
	buf.WriteByte(RecordTerminator)
	return buf.Bytes(), leader, nil
}

// projectedLength is the record length of n fields with dataLength bytes of fields and terminators.
// The terminator after the last field is replaced by the record terminator.
func projectedLength(n int, dataLength int) int {
	l := LeaderLength + n*DirectoryEntryLength + 1 + 1
	if n > 0 {
		l += dataLength - 1
	}
	return l
}
