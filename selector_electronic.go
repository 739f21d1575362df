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
	"github.com/nlnwa/whatwg-url/url"
)

// ElectronicLocationsSelector reads electronic location and access fields (856).
type ElectronicLocationsSelector struct {
	selection FieldSelection
}

// ElectronicLocations returns a selector for the record's electronic locations.
func (r *Record) ElectronicLocations() ElectronicLocationsSelector {
	return ElectronicLocationsSelector{selection: r.Fields()}
}

// URLs returns 856$u from all instances.
func (e ElectronicLocationsSelector) URLs() []string {
	return e.selection.Values(ElectronicLocationURLSelector)
}

// LinkTexts returns 856$y from all instances.
func (e ElectronicLocationsSelector) LinkTexts() []string {
	return e.selection.Values(ElectronicLinkTextSelector)
}

// ParsedURLs parses every 856$u as a WHATWG URL.
func (e ElectronicLocationsSelector) ParsedURLs() ([]*url.Url, error) {
	var result []*url.Url
	for _, u := range e.URLs() {
		parsed, err := url.Parse(u)
		if err != nil {
			return nil, newWrappedValidationError("856$u", "invalid url '"+u+"'", err)
		}
		result = append(result, parsed)
	}
	return result, nil
}
