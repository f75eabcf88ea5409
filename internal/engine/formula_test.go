package engine

import (
	"strings"
	"testing"

	domainStats "statcalc/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormulas(t *testing.T) {
	e := NewDefault()

	tests := []struct {
		name string
		kind domainStats.Kind
		in   Input
		want string
	}{
		{"std dev placeholder", domainStats.KindStandardDeviation, Input{}, "s = √[(∑ (xᵢ - x̄)²) / (n - 1)]"},
		{"std dev values", domainStats.KindStandardDeviation, Input{Data: "1,2,3,4"}, "s = √[5.00 / 3]"},
		{"median placeholder", domainStats.KindMedian, Input{}, "Mediana = (Lista ordenada) / n"},
		{"median values", domainStats.KindMedian, Input{Data: "3,1,2"}, "Mediana = (1, 2, 3) / 3"},
		{"mode placeholder", domainStats.KindMode, Input{}, "Moda = Valor(es) con mayor frecuencia"},
		{"mode none yet", domainStats.KindMode, Input{Data: "1,2,3"}, "Moda = No hay moda aún"},
		{"mode values", domainStats.KindMode, Input{Data: "1,2,2,3"}, "Moda = 2"},
		{"mean placeholder", domainStats.KindMean, Input{}, "x̄ = (∑ xᵢ) / n"},
		{"mean values", domainStats.KindMean, Input{Data: "1,2,3,4"}, "x̄ = 10 / 4"},
		{
			"finite placeholder", domainStats.KindFiniteSampleSize, Input{},
			"n = (N × Z² × 0.25) / (E² × (N - 1) + Z² × 0.25)",
		},
		{
			"finite values", domainStats.KindFiniteSampleSize,
			Input{Population: "1000", Margin: "5", Confidence: "1.965"},
			"n = (1000 × 1.965² × 0.25) / (5%² × (1000 - 1) + 1.965² × 0.25)",
		},
		{
			"infinite values", domainStats.KindInfiniteSampleSize,
			Input{Margin: "5", Confidence: "1.965"},
			"n = (1.965² × 0.5 × (1 - 0.5)) / 5²",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := e.Formula(tt.kind, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.String())
		})
	}
}

func TestFormulaKeepsFractionParts(t *testing.T) {
	f, err := NewDefault().Formula(domainStats.KindStandardDeviation, Input{Data: "1, 2, 3, 4"})
	require.NoError(t, err)
	assert.Equal(t, "s = ", f.Lead)
	assert.Equal(t, "5.00", f.Numerator)
	assert.Equal(t, "3", f.Denominator)
	assert.True(t, f.Radical)
}

func TestReferenceMarkdown(t *testing.T) {
	entries := Reference()
	require.Len(t, entries, 6)

	md := ReferenceMarkdown()
	assert.True(t, strings.HasPrefix(md, "# Fórmulas de Estadística Descriptiva\n"))
	for _, entry := range entries {
		assert.Contains(t, md, "## "+entry.Title+"\n\n`"+entry.Formula+"`")
	}
}
