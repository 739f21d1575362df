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
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearchRequest(t *testing.T) {
	req, err := ParseSearchRequest([]byte(`{
		"query": {
			"must": [
				{"field": "015", "subfield": "a", "value": "NBN:no-nb_001"},
				{"should": [
					{"field": "245", "subfield": "a", "value": "title", "operator": "contains", "ind1": "1"},
					{"field": "020", "value": "^978", "operator": "regex"}
				]}
			],
			"must_not": [{"field": "996", "subfield": "s", "value": "Bundle"}]
		}
	}`))
	require.NoError(t, err)

	assert.Equal(t, DefaultPage, req.Page)
	assert.Equal(t, DefaultPageSize, req.PageSize)
	assert.Equal(t, 0, req.Offset())

	require.Len(t, req.Query.Must, 2)
	cond, ok := req.Query.Must[0].(*Condition)
	require.True(t, ok)
	assert.Equal(t, &Condition{Field: "015", Subfield: "a", Value: "NBN:no-nb_001", Operator: OperatorExact}, cond)

	nested, ok := req.Query.Must[1].(*BoolQuery)
	require.True(t, ok)
	require.Len(t, nested.Should, 2)
	assert.Equal(t, OperatorContains, nested.Should[0].(*Condition).Operator)
	assert.Equal(t, "1", *nested.Should[0].(*Condition).Ind1)
	assert.Len(t, req.Query.MustNot, 1)
}

func TestSearchRequestPagination(t *testing.T) {
	q := &BoolQuery{Must: []Term{&Condition{Field: "245", Value: "x"}}}

	tests := []struct {
		name     string
		page     int
		pageSize int
		wantErr  bool
	}{
		{"defaults", DefaultPage, DefaultPageSize, false},
		{"max page size", 3, MaxPageSize, false},
		{"page zero", 0, 10, true},
		{"negative page", -1, 10, true},
		{"page size zero", 1, 0, true},
		{"page size too large", 1, MaxPageSize + 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewSearchRequest(q)
			req.Page = tt.page
			req.PageSize = tt.pageSize
			err := req.Validate()
			if tt.wantErr {
				var validationErr *ValidationError
				assert.True(t, errors.As(err, &validationErr), "expected *ValidationError, got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}

	req := NewSearchRequest(q)
	req.Page = 3
	req.PageSize = 20
	assert.Equal(t, 40, req.Offset())
}

func TestSearchRequestValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing query", `{}`},
		{"invalid field", `{"query": {"must": [{"field": "24", "value": "x"}]}}`},
		{"invalid subfield", `{"query": {"must": [{"field": "245", "subfield": "A", "value": "x"}]}}`},
		{"invalid operator", `{"query": {"must": [{"field": "245", "value": "x", "operator": "fuzzy"}]}}`},
		{"invalid regex", `{"query": {"must": [{"field": "245", "value": "(", "operator": "regex"}]}}`},
		{"invalid indicator", `{"query": {"must": [{"field": "245", "value": "x", "ind1": "A"}]}}`},
		{"nested invalid", `{"query": {"should": [{"must_not": [{"field": "2451", "value": "x"}]}]}}`},
		{"explicit page zero", `{"query": {}, "page": 0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSearchRequest([]byte(tt.data))
			var validationErr *ValidationError
			assert.True(t, errors.As(err, &validationErr), "expected *ValidationError, got %v", err)
		})
	}

	_, err := ParseSearchRequest([]byte(`{"query": {"must": [{"field": "245", "value": "x", "unknown": 1}]}}`))
	var formatErr *FormatError
	assert.True(t, errors.As(err, &formatErr), "expected *FormatError, got %v", err)
}

func TestIndicatorPatternAcceptsBlank(t *testing.T) {
	for _, ind := range []string{"", " ", "_", "\\", "0", "a"} {
		c := &Condition{Field: "245", Value: "x", Ind1: &ind}
		assert.NoError(t, c.validate("query"), "indicator %q", ind)
	}
}

func TestBoolQueryJSON(t *testing.T) {
	q := &BoolQuery{
		Must:   []Term{&Condition{Field: "245", Subfield: "a", Value: "x", Operator: OperatorStartsWith}},
		Should: []Term{&BoolQuery{MustNot: []Term{&Condition{Field: "020", Value: "y", Operator: OperatorEndsWith}}}},
	}
	data, err := json.Marshal(q)
	require.NoError(t, err)

	decoded := &BoolQuery{}
	require.NoError(t, json.Unmarshal(data, decoded))
	assert.Equal(t, q, decoded)
}
