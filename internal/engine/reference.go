package engine

import (
	"strings"

	domainStats "statcalc/domain/stats"
)

// ReferenceEntry is one titled formula on the formulas screen.
type ReferenceEntry struct {
	Kind    domainStats.Kind `json:"kind"`
	Title   string           `json:"title"`
	Formula string           `json:"formula"`
}

// Reference lists the general form of every formula.
func Reference() []ReferenceEntry {
	return []ReferenceEntry{
		{domainStats.KindMean, "Media", "x̄ = (∑ xᵢ) / n"},
		{domainStats.KindMode, "Moda", "Valor más frecuente"},
		{domainStats.KindMedian, "Mediana", "Valor central (ordenado)"},
		{domainStats.KindStandardDeviation, "Desviación Estándar", "s = √[∑ (xᵢ - x̄)² / (n - 1)]"},
		{domainStats.KindFiniteSampleSize, "Tamaño Muestra Finita", "n = (N × Z² × p × q) / [E² × (N - 1) + Z² × p × q]"},
		{domainStats.KindInfiniteSampleSize, "Tamaño Muestra Infinita", "n = (Z² × p × q) / E²"},
	}
}

// ReferenceMarkdown renders Reference as a markdown document.
func ReferenceMarkdown() string {
	var b strings.Builder
	b.WriteString("# Fórmulas de Estadística Descriptiva\n")
	for _, entry := range Reference() {
		b.WriteString("\n## ")
		b.WriteString(entry.Title)
		b.WriteString("\n\n`")
		b.WriteString(entry.Formula)
		b.WriteString("`\n")
	}
	return b.String()
}
