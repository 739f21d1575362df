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

func TestRecordFromBytes(t *testing.T) {
	record, err := RecordFromBytes([]byte(sampleRecord), newTestContext(t, WithMandatoryFields("001")))
	require.NoError(t, err)

	assert.Equal(t, sampleLeader, record.LeaderText())
	assert.True(t, record.HasMarc())
	marc, err := record.Marc()
	require.NoError(t, err)
	assert.Equal(t, sampleRecord, string(marc))
	assert.Equal(t, "MARC record: type: a, id: 1234, title: Test Title", record.String())
}

func TestRecordIsImmutable(t *testing.T) {
	record, err := RecordFromBytes([]byte(sampleRecord), newTestContext(t, WithMandatoryFields("001")))
	require.NoError(t, err)

	fixed := record.FixedFields()
	fixed["001"] = "changed"
	variable := record.VariableFields()
	variable["245"][0].Subfields["a"][0] = "changed"
	marc, _ := record.Marc()
	marc[0] = 'x'

	assert.Equal(t, "1234", record.ControlFields().ControlNumber())
	title, _ := record.TitleRelated().TitleStatement().Title()
	assert.Equal(t, "Test Title", title)
	marc, _ = record.Marc()
	assert.Equal(t, byte('0'), marc[0])
}

func TestRecordFromStructured(t *testing.T) {
	valid := func() *Structured {
		return &Structured{
			Leader:      sampleLeader,
			FixedFields: FixedFields{"001": "1", "005": "20230101123456.0", "008": "x"},
			VariableFields: VariableFields{
				"245": {{Ind1: "1", Ind2: " ", Subfields: map[string][]string{"a": {"Title"}}}},
			},
		}
	}

	t.Run("valid", func(t *testing.T) {
		record, err := RecordFromStructured(valid(), nil)
		require.NoError(t, err)
		assert.False(t, record.HasMarc())
		assert.Equal(t, "", record.VariableFields()["245"][0].Ind2, "blank indicator is normalized")
	})

	tests := []struct {
		name   string
		modify func(s *Structured)
		target interface{}
	}{
		{"short leader", func(s *Structured) { s.Leader = "00086" }, new(*FormatError)},
		{"missing mandatory", func(s *Structured) { delete(s.FixedFields, "005") }, new(*MissingMandatoryFieldError)},
		{"invalid fixed tag", func(s *Structured) { s.FixedFields["00A"] = "x" }, new(*ValidationError)},
		{"variable tag as fixed", func(s *Structured) { s.FixedFields["245"] = "x" }, new(*ValidationError)},
		{"fixed tag as variable", func(s *Structured) {
			s.VariableFields["003"] = []*VariableField{{Subfields: map[string][]string{}}}
		}, new(*ValidationError)},
		{"nil instance", func(s *Structured) { s.VariableFields["500"] = []*VariableField{nil} }, new(*ValidationError)},
		{"wide indicator", func(s *Structured) { s.VariableFields["245"][0].Ind1 = "10" }, new(*ValidationError)},
		{"invalid code", func(s *Structured) { s.VariableFields["245"][0].Subfields["ab"] = []string{"x"} }, new(*ValidationError)},
		{"uppercase code", func(s *Structured) { s.VariableFields["245"][0].Subfields["A"] = []string{"x"} }, new(*ValidationError)},
		{"uppercase indicator", func(s *Structured) { s.VariableFields["245"][0].Ind2 = "X" }, new(*ValidationError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.modify(s)
			_, err := RecordFromStructured(s, nil)
			require.Error(t, err)
			assert.True(t, errors.As(err, tt.target), "unexpected error type %T: %v", err, err)
		})
	}

	t.Run("nil", func(t *testing.T) {
		_, err := RecordFromStructured(nil, nil)
		var formatErr *FormatError
		assert.True(t, errors.As(err, &formatErr))
	})
}

func TestRecordValidationCollectsErrors(t *testing.T) {
	s := &Structured{
		Leader:      sampleLeader,
		FixedFields: FixedFields{"001": "1", "005": "x", "008": "x", "245": "x"},
		VariableFields: VariableFields{
			"500": {nil},
		},
	}
	_, err := RecordFromStructured(s, nil)
	require.Error(t, err)

	var errs multiErr
	require.True(t, errors.As(err, &errs))
	assert.Len(t, errs, 2)
}

func TestRecordJSON(t *testing.T) {
	record, err := RecordFromBytes([]byte(sampleRecord), newTestContext(t, WithMandatoryFields("001")))
	require.NoError(t, err)

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"leader": "00086nam  2200049   4500",
		"fixed_fields": {"001": "1234"},
		"variable_fields": {"245": [{"ind1": "1", "ind2": "0", "subfields": {"a": ["Test Title"], "b": ["Test Subtitle"]}}]}
	}`, string(data))

	decoded, err := RecordFromJSON(data, record.Context())
	require.NoError(t, err)
	assert.Equal(t, record.FixedFields(), decoded.FixedFields())
	assert.Equal(t, record.VariableFields(), decoded.VariableFields())
	assert.False(t, decoded.HasMarc())

	_, err = RecordFromJSON([]byte("{"), nil)
	var formatErr *FormatError
	assert.True(t, errors.As(err, &formatErr))
}
