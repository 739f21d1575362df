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
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is the content encoding used when none is configured.
const DefaultEncoding = "utf-8"

// contentCodec converts field content between its encoded form and UTF-8.
// Leader, directory, indicators and subfield codes are always ASCII and never pass through it.
type contentCodec struct {
	name     string
	encoding encoding.Encoding
	isUTF8   bool
}

func lookupEncoding(name string) (*contentCodec, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "utf-8" || n == "utf8" {
		return &contentCodec{name: DefaultEncoding, encoding: unicode.UTF8, isUTF8: true}, nil
	}

	e, err := htmlindex.Get(n)
	if err != nil {
		e, err = ianaindex.IANA.Encoding(name)
		if err == nil && e == nil {
			err = fmt.Errorf("encoding %s is not supported", name)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("gomarc: unknown content encoding '%s': %w", name, err)
	}
	return &contentCodec{name: n, encoding: e, isUTF8: e == unicode.UTF8}, nil
}

// decode returns b as a UTF-8 string. Undecodable bytes are replaced with U+FFFD.
func (c *contentCodec) decode(b []byte) string {
	if c.isUTF8 {
		if utf8.Valid(b) {
			return string(b)
		}
		log.Warnf("invalid %s content, replacing undecodable bytes", c.name)
		return strings.ToValidUTF8(string(b), string(utf8.RuneError))
	}
	out, err := c.encoding.NewDecoder().Bytes(b)
	if err != nil {
		log.Warnf("could not decode %s content: %v", c.name, err)
		return strings.ToValidUTF8(string(b), string(utf8.RuneError))
	}
	return string(out)
}

// encode converts s to the content encoding.
func (c *contentCodec) encode(s string) ([]byte, error) {
	if c.isUTF8 {
		return []byte(s), nil
	}
	out, err := c.encoding.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, newWrappedFormatError(fmt.Sprintf("cannot encode '%s' as %s", s, c.name), err)
	}
	return out, nil
}
