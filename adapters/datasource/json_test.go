package datasource

import (
	"testing"

	"statcalc/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNumbers(t *testing.T) {
	body := []byte(`{
		"values": [1, 2, 2, 3],
		"nested": {"list": "4, 5 6"},
		"rows": [{"score": 7}, {"score": "8"}, {"score": null}],
		"mixed": [1, "x", [2, 3], {"a": 9}],
		"single": 42
	}`)

	tests := []struct {
		path string
		want []float64
	}{
		{"values", []float64{1, 2, 2, 3}},
		{"nested.list", []float64{4, 5, 6}},
		{"rows.#.score", []float64{7, 8}},
		{"mixed", []float64{1, 2, 3}},
		{"single", []float64{42}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ExtractNumbers(body, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractNumbersWholeDocument(t *testing.T) {
	got, err := ExtractNumbers([]byte(`[10, 20.5]`), "")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20.5}, got)
}

func TestExtractNumbersErrors(t *testing.T) {
	_, err := ExtractNumbers([]byte(`{"a": [1]}`), "b")
	assert.ErrorIs(t, err, core.ErrPathNotFound)
	assert.True(t, core.IsInputError(err))

	_, err = ExtractNumbers([]byte(`{"a": ["x", true]}`), "a")
	assert.ErrorIs(t, err, core.ErrNoNumericData)

	_, err = ExtractNumbers([]byte(`{not json`), "a")
	assert.ErrorIs(t, err, core.ErrNoNumericData)
}

func TestReadJSONFile(t *testing.T) {
	path := writeFile(t, "data.json", `{"data": {"values": [3, 1, 2]}}`)

	numbers, err := Load(Request{Path: path, JSONPath: "data.values"}, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, numbers)
}
