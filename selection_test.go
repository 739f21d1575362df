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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectorRecord(t *testing.T, opts ...Option) *Record {
	t.Helper()
	fields := append(mandatoryFields(),
		rawField{"003", "NO-OsNB"},
		rawField{"015", dataField(" ", " ", "a", "NBN:no-nb_001", "a", "NBN:no-nb_002")},
		rawField{"015", dataField(" ", " ", "a", "NBN:no-nb_003", "z", "NBN:no-nb_000")},
		rawField{"020", dataField(" ", " ", "a", "978-82-02-00000-1", "c", "NOK 299")},
		rawField{"020", dataField(" ", " ", "a", "978-82-02-00000-2", "c", "NOK 399")},
		rawField{"022", dataField(" ", " ", "a", "0000-0001")},
		rawField{"245", dataField("1", "0", "a", "Test Title", "b", "Test Subtitle")},
		rawField{"856", dataField("4", "0", "u", "https://www.nb.no/items/1", "y", "Digital version")},
		rawField{"910", dataField(" ", " ", "a", "NB", "b", "A 1234")},
		rawField{"910", dataField(" ", " ", "a", "NB-R", "b", "B 99")},
		rawField{"996", dataField(" ", " ", "b", "123456789", "s", "Volume", "v", "1", "y", "2023")},
		rawField{"996", dataField(" ", " ", "b", "987654321", "s", "Unit", "i", "bundle-1")},
		rawField{"996", dataField(" ", " ", "s", "Unit")},
	)
	record, err := RecordFromBytes(buildRecord(t, fields...), newTestContext(t, opts...))
	require.NoError(t, err)
	return record
}

func TestFieldSelection(t *testing.T) {
	fs := selectorRecord(t).Fields()
	nbn := FieldSelector{Tag: "015", Code: "a"}

	v, ok := fs.FirstValue(nbn)
	assert.True(t, ok)
	assert.Equal(t, "NBN:no-nb_001", v)
	assert.Equal(t, []string{"NBN:no-nb_001", "NBN:no-nb_002"}, fs.AllValues(nbn))
	assert.Equal(t, []string{"NBN:no-nb_001", "NBN:no-nb_003"}, fs.FirstValueAllFields(nbn))
	assert.Equal(t, [][]string{{"NBN:no-nb_001", "NBN:no-nb_002"}, {"NBN:no-nb_003"}}, fs.AllValuesAllFields(nbn))
	assert.Equal(t, []string{"NBN:no-nb_001", "NBN:no-nb_002", "NBN:no-nb_003"}, fs.Values(nbn))

	first, ok := fs.First(nbn)
	require.True(t, ok)
	assert.Equal(t, "", first.Ind1())
	assert.Equal(t, []string{"a"}, first.Codes())
	assert.Len(t, fs.All(nbn), 2)

	title, ok := fs.First(TitleSelector)
	require.True(t, ok)
	assert.Equal(t, "1", title.Ind1())
	assert.Equal(t, "0", title.Ind2())
}

func TestFieldSelectionAbsence(t *testing.T) {
	fs := selectorRecord(t).Fields()
	missingTag := FieldSelector{Tag: "100", Code: "a"}
	missingCode := FieldSelector{Tag: "245", Code: "n"}

	for _, sel := range []FieldSelector{missingTag, missingCode} {
		v, ok := fs.FirstValue(sel)
		assert.False(t, ok)
		assert.Equal(t, "", v)
		assert.Empty(t, fs.AllValues(sel))
		assert.Empty(t, fs.FirstValueAllFields(sel))
		assert.Empty(t, fs.Values(sel))
	}
	_, ok := fs.First(missingTag)
	assert.False(t, ok)
	assert.Empty(t, fs.All(missingTag))
}

func TestNumbersAndCodesSelector(t *testing.T) {
	numbers := selectorRecord(t).NumbersAndCodes()
	assert.Equal(t, []string{"NBN:no-nb_001", "NBN:no-nb_002", "NBN:no-nb_003"}, numbers.Nbn())
	assert.Equal(t, []string{"978-82-02-00000-1", "978-82-02-00000-2"}, numbers.Isbn().Active())
	assert.Equal(t, []string{"NOK 299", "NOK 399"}, numbers.Isbn().TermsOfAvailability())
	assert.Equal(t, []string{"0000-0001"}, numbers.Issn().Active())
	assert.Equal(t, numbers.Isbn().Active(), numbers.Isxn())

	serial, err := RecordFromBytes(buildRecord(t, append(mandatoryFields(),
		rawField{"022", dataField(" ", " ", "a", "0000-0002")})...), nil)
	require.NoError(t, err)
	assert.Empty(t, serial.NumbersAndCodes().Isbn().Active())
	assert.Equal(t, []string{"0000-0002"}, serial.NumbersAndCodes().Isxn())
}

func TestTitleRelatedSelector(t *testing.T) {
	ts := selectorRecord(t).TitleRelated().TitleStatement()
	title, ok := ts.Title()
	assert.True(t, ok)
	assert.Equal(t, "Test Title", title)
	subtitle, ok := ts.Subtitle()
	assert.True(t, ok)
	assert.Equal(t, "Test Subtitle", subtitle)

	untitled, err := RecordFromBytes(buildRecord(t, mandatoryFields()...), nil)
	require.NoError(t, err)
	_, ok = untitled.TitleRelated().TitleStatement().Title()
	assert.False(t, ok)
}

func TestIssuesSelector(t *testing.T) {
	issues := selectorRecord(t).Issues()
	assert.Len(t, issues.All(), 3)

	issue, ok := issues.FindByBarcode("123456789")
	require.True(t, ok)
	assert.Equal(t, "123456789", issue.Barcode)
	assert.Equal(t, IssuanceVolume, issue.IssuanceType)
	assert.True(t, issue.IssuanceType.Known())
	assert.Equal(t, "1", issue.VolumeNumber)
	assert.Equal(t, "2023", issue.VolumeYear)
	assert.Equal(t, "", issue.Bundle)
	year, ok := issue.Selection().First("y")
	assert.True(t, ok)
	assert.Equal(t, "2023", year)

	issue, ok = issues.FindByBarcode("987654321")
	require.True(t, ok)
	assert.Equal(t, IssuanceUnit, issue.IssuanceType)
	assert.Equal(t, "bundle-1", issue.Bundle)

	_, ok = issues.FindByBarcode("000000000")
	assert.False(t, ok)
	_, ok = issues.FindByBarcode("")
	assert.False(t, ok)
}

func TestIssuesSelectorCustomMapping(t *testing.T) {
	mapping := IssueMapping{Tag: "910", Barcode: "b", IssuanceType: "a"}
	issues := selectorRecord(t, WithIssueMapping(mapping)).Issues()
	issue, ok := issues.FindByBarcode("B 99")
	require.True(t, ok)
	assert.Equal(t, IssuanceType("NB-R"), issue.IssuanceType)
	assert.False(t, issue.IssuanceType.Known())
}

func TestLocalFieldsSelector(t *testing.T) {
	local := selectorRecord(t).LocalFields()
	assert.Equal(t, []string{"NB", "NB-R"}, local.Get("location", "sigla"))
	assert.Equal(t, []string{"A 1234", "B 99"}, local.Get("location", "signature"))
	assert.True(t, local.Has("location", "sigla"))
	assert.Empty(t, local.Get("location", "shelf"))
	assert.Empty(t, local.Get("storage", "sigla"))
}

func TestElectronicLocationsSelector(t *testing.T) {
	locations := selectorRecord(t).ElectronicLocations()
	assert.Equal(t, []string{"https://www.nb.no/items/1"}, locations.URLs())
	assert.Equal(t, []string{"Digital version"}, locations.LinkTexts())

	urls, err := locations.ParsedURLs()
	require.NoError(t, err)
	require.Len(t, urls, 1)
	assert.Equal(t, "www.nb.no", urls[0].Hostname())

	broken, err := RecordFromBytes(buildRecord(t, append(mandatoryFields(),
		rawField{"856", dataField("4", "0", "u", "http://exa mple.com:99999/")})...), nil)
	require.NoError(t, err)
	_, err = broken.ElectronicLocations().ParsedURLs()
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "expected *ValidationError, got %v", err)
	assert.Equal(t, "856$u", validationErr.Field())
}

func TestLeaderSelector(t *testing.T) {
	leader := selectorRecord(t).Leader()
	assert.Equal(t, "n", leader.RecordStatus())
	assert.Equal(t, "a", leader.TypeOfRecord())
	assert.Equal(t, "m", leader.BibliographicLevel())
	assert.Equal(t, "", leader.ControlType())
	assert.Equal(t, "4500", leader.EntryMap())
}

func TestControlFieldsSelector(t *testing.T) {
	cf := selectorRecord(t).ControlFields()
	assert.Equal(t, "1234", cf.ControlNumber())
	assert.Equal(t, "NO-OsNB", cf.ControlNumberIdentifier())

	ts, ok, err := cf.LatestTransaction()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2023, 1, 1, 12, 34, 56, 0, time.UTC), ts)

	fd, ok, err := cf.FixedLengthDataElements()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, &FixedLengthDataElements{
		DateEntered:        time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		PublicationStatus:  "s",
		Date1:              "2023",
		Date2:              "",
		PlaceOfPublication: "xx",
		Language:           "nor",
	}, fd)
}

func TestFixedLengthDataElementsCountsCharacters(t *testing.T) {
	record, err := RecordFromBytes(buildRecord(t,
		rawField{"001", "1"},
		rawField{"005", "20230101123456.0"},
		rawField{"008", "230101s2023    xx   ø        000 0 nor d"},
	), nil)
	require.NoError(t, err)

	fd, ok, err := record.ControlFields().FixedLengthDataElements()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "xx", fd.PlaceOfPublication)
	assert.Equal(t, "nor", fd.Language)
}

func TestControlFieldsSelectorErrors(t *testing.T) {
	tests := []struct {
		name  string
		f005  string
		f008  string
		field string
	}{
		{"bad latest transaction", "2023-01-01", "230101s2023    xx            000 0 nor d", "005"},
		{"impossible latest transaction", "20231301123456.0", "230101s2023    xx            000 0 nor d", "005"},
		{"short fixed length data", "20230101123456.0", "230101s2023", "008"},
		{"bad date entered", "20230101123456.0", "231301s2023    xx            000 0 nor d", "008"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := RecordFromBytes(buildRecord(t,
				rawField{"001", "1"}, rawField{"005", tt.f005}, rawField{"008", tt.f008}), nil)
			require.NoError(t, err)

			cf := record.ControlFields()
			var selErr error
			if tt.field == "005" {
				_, _, selErr = cf.LatestTransaction()
			} else {
				_, _, selErr = cf.FixedLengthDataElements()
			}
			var validationErr *ValidationError
			require.True(t, errors.As(selErr, &validationErr), "expected *ValidationError, got %v", selErr)
			assert.Equal(t, tt.field, validationErr.Field())
		})
	}
}
