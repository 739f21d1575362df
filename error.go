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

// FormatError is used for structurally invalid input like a short leader, a broken directory
// or a field slice outside the record.
type FormatError struct {
	msg     string
	wrapped error
}

func newFormatError(msg string) *FormatError {
	return &FormatError{msg: msg}
}

func newFormatErrorf(msg string, param ...interface{}) *FormatError {
	return &FormatError{msg: fmt.Sprintf(msg, param...)}
}

func newWrappedFormatError(msg string, wrapped error) *FormatError {
	return &FormatError{msg: msg, wrapped: wrapped}
}

func (e *FormatError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("gomarc: %s: %v", e.msg, e.wrapped)
	}
	return fmt.Sprintf("gomarc: %s", e.msg)
}

func (e *FormatError) Unwrap() error {
	return e.wrapped
}

// UnknownTagError is returned when a field tag is not three digits and unknown tags are not ignored.
type UnknownTagError struct {
	Tag string
}

func newUnknownTagError(tag string) *UnknownTagError {
	return &UnknownTagError{Tag: tag}
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("gomarc: unknown tag '%s'", e.Tag)
}

// MissingMandatoryFieldError lists every mandatory tag missing from a record.
type MissingMandatoryFieldError struct {
	Tags []string
}

func newMissingMandatoryFieldError(tags []string) *MissingMandatoryFieldError {
	return &MissingMandatoryFieldError{Tags: tags}
}

func (e *MissingMandatoryFieldError) Error() string {
	return fmt.Sprintf("gomarc: missing mandatory fields: %s", strings.Join(e.Tags, ", "))
}

// RecordTooLargeError is returned when an encoded record would exceed MaxRecordLength.
type RecordTooLargeError struct {
	Length int
}

func newRecordTooLargeError(length int) *RecordTooLargeError {
	return &RecordTooLargeError{Length: length}
}

func (e *RecordTooLargeError) Error() string {
	return fmt.Sprintf("gomarc: record length %d exceeds maximum of %d bytes", e.Length, MaxRecordLength)
}

// ValidationError is used for malformed values in a record, like a control field
// which does not follow its expected pattern.
type ValidationError struct {
	field   string
	msg     string
	wrapped error
}

func newValidationError(field string, msg string) *ValidationError {
	return &ValidationError{field: field, msg: msg}
}

func newValidationErrorf(field string, msg string, param ...interface{}) *ValidationError {
	return &ValidationError{field: field, msg: fmt.Sprintf(msg, param...)}
}

func newWrappedValidationError(field string, msg string, wrapped error) *ValidationError {
	return &ValidationError{field: field, msg: msg, wrapped: wrapped}
}

// Field returns the tag (or tag and subfield) the error refers to.
func (e *ValidationError) Field() string {
	return e.field
}

func (e *ValidationError) Error() string {
	msg := e.msg
	if e.wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.wrapped)
	}
	if e.field != "" {
		return fmt.Sprintf("gomarc: %s at field %s", msg, e.field)
	}
	return fmt.Sprintf("gomarc: %s", msg)
}

func (e *ValidationError) Unwrap() error {
	return e.wrapped
}

// MappingError is returned when a mapping table is inconsistent.
type MappingError struct {
	tag string
	msg string
}

func newMappingErrorf(tag string, msg string, param ...interface{}) *MappingError {
	return &MappingError{tag: tag, msg: fmt.Sprintf(msg, param...)}
}

func (e *MappingError) Error() string {
	if e.tag != "" {
		return fmt.Sprintf("gomarc: mapping for tag %s: %s", e.tag, e.msg)
	}
	return fmt.Sprintf("gomarc: mapping: %s", e.msg)
}

type multiErr []error

func (e multiErr) Error() string {
	switch len(e) {

	case 0:
		return ""

	case 1:
		return e[0].Error()
	}

	const (
		start = "["
		sep   = ", "
		end   = "]"
	)

	n := len(start) + len(end) + (len(sep) * (len(e) - 1))
	for i := 0; i < len(e); i++ {
		n += len(e[i].Error())
	}

	var b strings.Builder
	b.Grow(n)
	b.WriteString(start)
	b.WriteString(e[0].Error())
	for _, s := range e[1:] {
		b.WriteString(sep)
		b.WriteString(s.Error())
	}
	b.WriteString(end)
	return b.String()
}

// Unwrap lets errors.As find the individual errors.
func (e multiErr) Unwrap() []error {
	return e
}

func (e multiErr) errOrNil() error {
	switch len(e) {
	case 0:
		return nil
	case 1:
		return e[0]
	}
	return e
}
