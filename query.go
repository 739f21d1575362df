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
	"encoding/json"
	"fmt"
	"regexp"
)

// SearchOperator tells how a condition value is matched.
type SearchOperator string

const (
	OperatorExact      SearchOperator = "exact"
	OperatorContains   SearchOperator = "contains"
	OperatorRegex      SearchOperator = "regex"
	OperatorStartsWith SearchOperator = "startswith"
	OperatorEndsWith   SearchOperator = "endswith"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 1000
)

var queryIndicatorPattern = regexp.MustCompile(`^[\\_0-9a-z ]?$`)

func (o SearchOperator) validate() error {
	switch o {
	case OperatorExact, OperatorContains, OperatorRegex, OperatorStartsWith, OperatorEndsWith:
		return nil
	}
	return newValidationErrorf("operator", "unknown search operator '%s'", o)
}

// Term is either a *Condition or a *BoolQuery.
type Term interface {
	validate(path string) error
}

// Condition is a single search condition on a field or subfield.
type Condition struct {
	Field    string         `json:"field"`
	Subfield string         `json:"subfield,omitempty"`
	Value    string         `json:"value"`
	Operator SearchOperator `json:"operator,omitempty"`
	Ind1     *string        `json:"ind1,omitempty"`
	Ind2     *string        `json:"ind2,omitempty"`
}

func (c *Condition) validate(path string) error {
	if !IsValidTag(c.Field) {
		return newValidationErrorf(path, "field '%s' must be three digits", c.Field)
	}
	if c.Subfield != "" && !IsValidSubfieldCode(c.Subfield) {
		return newValidationErrorf(path, "subfield '%s' must be a lowercase letter or digit", c.Subfield)
	}
	if c.Operator == "" {
		c.Operator = OperatorExact
	}
	if err := c.Operator.validate(); err != nil {
		return newWrappedValidationError(path, "invalid condition", err)
	}
	if c.Operator == OperatorRegex {
		if _, err := regexp.Compile(c.Value); err != nil {
			return newWrappedValidationError(path, "invalid regular expression", err)
		}
	}
	for _, ind := range []*string{c.Ind1, c.Ind2} {
		if ind != nil && !queryIndicatorPattern.MatchString(*ind) {
			return newValidationErrorf(path, "invalid indicator '%s'", *ind)
		}
	}
	return nil
}

// BoolQuery combines terms. Must terms are and'ed, MustNot terms are negated and and'ed,
// and at least one Should term has to match.
type BoolQuery struct {
	Must    []Term
	MustNot []Term
	Should  []Term
}

func (q *BoolQuery) validate(path string) error {
	groups := []struct {
		name  string
		terms []Term
	}{{"must", q.Must}, {"must_not", q.MustNot}, {"should", q.Should}}
	for _, g := range groups {
		for i, t := range g.terms {
			if t == nil {
				return newValidationErrorf(path, "%s[%d] is empty", g.name, i)
			}
			if err := t.validate(fmt.Sprintf("%s.%s[%d]", path, g.name, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

type boolQueryJSON struct {
	Must    []json.RawMessage `json:"must,omitempty"`
	MustNot []json.RawMessage `json:"must_not,omitempty"`
	Should  []json.RawMessage `json:"should,omitempty"`
}

func (q *BoolQuery) UnmarshalJSON(data []byte) error {
	var raw boolQueryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var err error
	if q.Must, err = unmarshalTerms(raw.Must); err != nil {
		return err
	}
	if q.MustNot, err = unmarshalTerms(raw.MustNot); err != nil {
		return err
	}
	q.Should, err = unmarshalTerms(raw.Should)
	return err
}

func (q *BoolQuery) MarshalJSON() ([]byte, error) {
	out := struct {
		Must    []Term `json:"must,omitempty"`
		MustNot []Term `json:"must_not,omitempty"`
		Should  []Term `json:"should,omitempty"`
	}{q.Must, q.MustNot, q.Should}
	return json.Marshal(out)
}

// unmarshalTerms decodes each term as a condition when it carries a field key and as a nested query otherwise.
func unmarshalTerms(raw []json.RawMessage) ([]Term, error) {
	if raw == nil {
		return nil, nil
	}
	terms := make([]Term, 0, len(raw))
	for _, r := range raw {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(r, &probe); err != nil {
			return nil, err
		}
		if _, ok := probe["field"]; ok {
			c := &Condition{}
			dec := json.NewDecoder(bytes.NewReader(r))
			dec.DisallowUnknownFields()
			if err := dec.Decode(c); err != nil {
				return nil, err
			}
			terms = append(terms, c)
			continue
		}
		q := &BoolQuery{}
		if err := json.Unmarshal(r, q); err != nil {
			return nil, err
		}
		terms = append(terms, q)
	}
	return terms, nil
}

// SearchRequest is a query with pagination.
type SearchRequest struct {
	Query    *BoolQuery `json:"query"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// ParseSearchRequest decodes and validates a JSON search request, applying default pagination.
func ParseSearchRequest(data []byte) (*SearchRequest, error) {
	req := &SearchRequest{Page: DefaultPage, PageSize: DefaultPageSize}
	if err := json.Unmarshal(data, req); err != nil {
		return nil, newWrappedFormatError("invalid search request", err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// NewSearchRequest returns a request for the first page with the default page size.
func NewSearchRequest(query *BoolQuery) *SearchRequest {
	return &SearchRequest{Query: query, Page: DefaultPage, PageSize: DefaultPageSize}
}

// Validate checks the query and pagination.
func (r *SearchRequest) Validate() error {
	if r.Page < 1 {
		return newValidationErrorf("page", "page must be at least 1, was %d", r.Page)
	}
	if r.PageSize < 1 || r.PageSize > MaxPageSize {
		return newValidationErrorf("page_size", "page size must be between 1 and %d, was %d", MaxPageSize, r.PageSize)
	}
	if r.Query == nil {
		return newValidationError("query", "missing query")
	}
	return r.Query.validate("query")
}

// Offset returns the zero based index of the first result on the requested page.
func (r *SearchRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}
