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
	"strings"
	"time"

	"github.com/nlnwa/gomarc/internal/timestamp"
)

const (
	tagControlNumber           = "001"
	tagControlNumberIdentifier = "003"
	tagLatestTransaction       = "005"
	tagFixedLengthData         = "008"

	fixedLengthDataLength = 40
)

// ControlFieldsSelector gives named access to the control fields.
type ControlFieldsSelector struct {
	fields FixedFields
}

// ControlFields returns a selector for the record's control fields.
func (r *Record) ControlFields() ControlFieldsSelector {
	return ControlFieldsSelector{fields: r.fixed}
}

// ControlNumber returns field 001.
func (c ControlFieldsSelector) ControlNumber() string {
	return c.fields.Get(tagControlNumber)
}

// ControlNumberIdentifier returns field 003, or "" if absent.
func (c ControlFieldsSelector) ControlNumberIdentifier() string {
	return c.fields.Get(tagControlNumberIdentifier)
}

// LatestTransaction parses field 005 (yyyymmddhhmmss.f). The bool is false if the field is absent.
func (c ControlFieldsSelector) LatestTransaction() (time.Time, bool, error) {
	value, ok := c.fields[tagLatestTransaction]
	if !ok {
		return time.Time{}, false, nil
	}
	t, err := timestamp.FromTransaction(value)
	if errors.Is(err, timestamp.ErrTransactionFormat) {
		return time.Time{}, true, newValidationErrorf(tagLatestTransaction, "invalid format '%s': %v", value, err)
	}
	if err != nil {
		return time.Time{}, true, newWrappedValidationError(tagLatestTransaction, "invalid date and time", err)
	}
	return t, true, nil
}

// FixedLengthDataElements is the decoded content of field 008.
type FixedLengthDataElements struct {
	DateEntered       time.Time
	PublicationStatus string
	// Date1 and Date2 are "" when unknown.
	Date1              string
	Date2              string
	PlaceOfPublication string
	Language           string
}

// FixedLengthDataElements parses field 008, counting positions in characters.
// The bool is false if the field is absent.
func (c ControlFieldsSelector) FixedLengthDataElements() (*FixedLengthDataElements, bool, error) {
	value, ok := c.fields[tagFixedLengthData]
	if !ok {
		return nil, false, nil
	}
	chars := []rune(value)
	if len(chars) != fixedLengthDataLength {
		return nil, true, newValidationErrorf(tagFixedLengthData,
			"must be exactly %d characters long, was %d", fixedLengthDataLength, len(chars))
	}
	pos := func(from, to int) string { return string(chars[from:to]) }
	entered, err := timestamp.FromDateEntered(pos(0, 6))
	if err != nil {
		return nil, true, newWrappedValidationError(tagFixedLengthData, "invalid date entered on file", err)
	}
	return &FixedLengthDataElements{
		DateEntered:        entered,
		PublicationStatus:  pos(6, 7),
		Date1:              publicationDate(pos(7, 11)),
		Date2:              publicationDate(pos(11, 15)),
		PlaceOfPublication: strings.Trim(pos(15, 18), " -"),
		Language:           pos(35, 38),
	}, true, nil
}

func publicationDate(date string) string {
	switch date {
	case "0000", "    ", "----":
		return ""
	}
	return date
}
