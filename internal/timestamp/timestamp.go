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

// Package timestamp parses the date formats used in MARC21 control fields.
package timestamp

import (
	"errors"
	"regexp"
	"time"
)

const (
	transactionLayout = "20060102150405"
	dateEnteredLayout = "060102"
)

var transactionPattern = regexp.MustCompile(`^\d{14}\.\d+$`)

// ErrTransactionFormat is returned for a latest transaction value not following yyyymmddhhmmss.f.
var ErrTransactionFormat = errors.New("must follow 'yyyymmddhhmmss.f'")

// FromTransaction parses a date and time of latest transaction (yyyymmddhhmmss.f) as UTC.
func FromTransaction(s string) (time.Time, error) {
	if !transactionPattern.MatchString(s) {
		return time.Time{}, ErrTransactionFormat
	}
	return time.Parse(transactionLayout, s)
}

// FromDateEntered parses a date entered on file (yymmdd) as UTC.
func FromDateEntered(s string) (time.Time, error) {
	return time.Parse(dateEnteredLayout, s)
}
