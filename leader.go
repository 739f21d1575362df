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
	"strconv"
	"strings"
)

// Leader is the fixed 24 byte header of a MARC21 record.
type Leader struct {
	RecordLength                 int
	RecordStatus                 string
	TypeOfRecord                 string
	BibliographicLevel           string
	ControlType                  string
	CharacterEncodingScheme      string
	IndicatorCount               string
	SubfieldCodeCount            string
	BaseAddressOfData            int
	EncodingLevel                string
	CatalogingForm               string
	MultipartResourceRecordLevel string
	EntryMap                     string
}

// ParseLeader decodes the first 24 bytes of b.
func ParseLeader(b []byte) (*Leader, error) {
	if len(b) < LeaderLength {
		return nil, newFormatErrorf("leader too short: %d bytes (expected %d)", len(b), LeaderLength)
	}
	b = b[:LeaderLength]
	if i := nonASCIIIndex(b); i >= 0 {
		return nil, newFormatErrorf("non-ASCII byte in leader at position %d", i)
	}
	s := string(b)

	recordLength, err := parseLeaderNumber(s[0:5])
	if err != nil {
		return nil, newWrappedFormatError("invalid record length in leader", err)
	}
	baseAddress, err := parseLeaderNumber(s[12:17])
	if err != nil {
		return nil, newWrappedFormatError("invalid base address of data in leader", err)
	}

	return &Leader{
		RecordLength:                 recordLength,
		RecordStatus:                 s[5:6],
		TypeOfRecord:                 s[6:7],
		BibliographicLevel:           s[7:8],
		ControlType:                  s[8:9],
		CharacterEncodingScheme:      s[9:10],
		IndicatorCount:               s[10:11],
		SubfieldCodeCount:            s[11:12],
		BaseAddressOfData:            baseAddress,
		EncodingLevel:                s[17:18],
		CatalogingForm:               s[18:19],
		MultipartResourceRecordLevel: s[19:20],
		EntryMap:                     s[20:24],
	}, nil
}

// Bytes encodes the leader. Single character fields and the entry map must have their exact widths.
func (l *Leader) Bytes() ([]byte, error) {
	if l.RecordLength < 0 || l.RecordLength > MaxRecordLength {
		return nil, newFormatErrorf("record length %d does not fit in leader", l.RecordLength)
	}
	if l.BaseAddressOfData < 0 || l.BaseAddressOfData > MaxRecordLength {
		return nil, newFormatErrorf("base address of data %d does not fit in leader", l.BaseAddressOfData)
	}

	chars := []struct {
		name  string
		value string
		width int
	}{
		{"record status", l.RecordStatus, 1},
		{"type of record", l.TypeOfRecord, 1},
		{"bibliographic level", l.BibliographicLevel, 1},
		{"control type", l.ControlType, 1},
		{"character encoding scheme", l.CharacterEncodingScheme, 1},
		{"indicator count", l.IndicatorCount, 1},
		{"subfield code count", l.SubfieldCodeCount, 1},
		{"encoding level", l.EncodingLevel, 1},
		{"cataloging form", l.CatalogingForm, 1},
		{"multipart resource record level", l.MultipartResourceRecordLevel, 1},
		{"entry map", l.EntryMap, 4},
	}
	for _, c := range chars {
		if len(c.value) != c.width {
			return nil, newFormatErrorf("leader %s must be %d characters, was '%s'", c.name, c.width, c.value)
		}
		if i := nonASCIIIndex([]byte(c.value)); i >= 0 {
			return nil, newFormatErrorf("leader %s contains non-ASCII characters", c.name)
		}
	}

	sb := strings.Builder{}
	sb.Grow(LeaderLength)
	fmt.Fprintf(&sb, "%05d", l.RecordLength)
	sb.WriteString(l.RecordStatus)
	sb.WriteString(l.TypeOfRecord)
	sb.WriteString(l.BibliographicLevel)
	sb.WriteString(l.ControlType)
	sb.WriteString(l.CharacterEncodingScheme)
	sb.WriteString(l.IndicatorCount)
	sb.WriteString(l.SubfieldCodeCount)
	fmt.Fprintf(&sb, "%05d", l.BaseAddressOfData)
	sb.WriteString(l.EncodingLevel)
	sb.WriteString(l.CatalogingForm)
	sb.WriteString(l.MultipartResourceRecordLevel)
	sb.WriteString(l.EntryMap)
	return []byte(sb.String()), nil
}

func (l *Leader) String() string {
	b, err := l.Bytes()
	if err != nil {
		return fmt.Sprintf("invalid leader: %v", err)
	}
	return string(b)
}

// withLengths returns the leader text with record length and base address replaced.
func withLengths(leader string, recordLength, baseAddress int) string {
	return fmt.Sprintf("%05d", recordLength) + leader[5:12] + fmt.Sprintf("%05d", baseAddress) + leader[17:]
}

// parseLeaderNumber parses a decimal leader or directory field. Blank is zero.
func parseLeaderNumber(s string) (int, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, nil
	}
	for i := 0; i < len(t); i++ {
		if t[i] < '0' || t[i] > '9' {
			return 0, fmt.Errorf("'%s' is not a decimal number", s)
		}
	}
	return strconv.Atoi(t)
}

func nonASCIIIndex(b []byte) int {
	for i, c := range b {
		if c >= 0x80 {
			return i
		}
	}
	return -1
}
