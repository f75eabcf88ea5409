package engine

import (
	"fmt"
	"sort"
	"strings"

	domainStats "statcalc/domain/stats"
)

// NoModeText is reported when every value occurs exactly once.
const NoModeText = "No hay moda"

// ModeOrder controls how tied modes are listed.
type ModeOrder string

const (
	ModeOrderAscending ModeOrder = "ascending"  // numeric order
	ModeOrderFirstSeen ModeOrder = "first-seen" // order of first occurrence in the input
)

// ParseModeOrder validates a mode order name. The empty string selects ascending.
func ParseModeOrder(s string) (ModeOrder, error) {
	switch ModeOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeOrderAscending:
		return ModeOrderAscending, nil
	case ModeOrderFirstSeen:
		return ModeOrderFirstSeen, nil
	}
	return "", fmt.Errorf("unknown mode order %q (want %s or %s)", s, ModeOrderAscending, ModeOrderFirstSeen)
}

// FrequencyTable counts occurrences of each distinct value and remembers the
// order in which values were first seen.
type FrequencyTable struct {
	counts map[float64]int
	order  []float64
}

// NewFrequencyTable builds a table from numbers.
func NewFrequencyTable(numbers []float64) *FrequencyTable {
	t := &FrequencyTable{counts: make(map[float64]int, len(numbers))}
	for _, v := range numbers {
		if t.counts[v] == 0 {
			t.order = append(t.order, v)
		}
		t.counts[v]++
	}
	return t
}

// Len returns the number of distinct values.
func (t *FrequencyTable) Len() int { return len(t.order) }

// Count returns how often v occurred.
func (t *FrequencyTable) Count(v float64) int { return t.counts[v] }

// Values returns the distinct values in first-seen order.
func (t *FrequencyTable) Values() []float64 {
	out := make([]float64, len(t.order))
	copy(out, t.order)
	return out
}

// MaxFrequency returns the highest count in the table, zero when empty.
func (t *FrequencyTable) MaxFrequency() int {
	max := 0
	for _, c := range t.counts {
		if c > max {
			max = c
		}
	}
	return max
}

// Modes returns every value whose count equals the maximum frequency.
func (t *FrequencyTable) Modes(order ModeOrder) []float64 {
	max := t.MaxFrequency()
	var modes []float64
	for _, v := range t.order {
		if t.counts[v] == max {
			modes = append(modes, v)
		}
	}
	if order != ModeOrderFirstSeen {
		sort.Float64s(modes)
	}
	return modes
}

// HasMode reports whether the data has a meaningful mode: it does not when
// every distinct value occurs exactly once.
func (t *FrequencyTable) HasMode() bool {
	return t.Len() > 0 && t.MaxFrequency() > 1
}

// Mode returns the most frequent value(s) in ascending order, joined with ", ".
func Mode(numbers []float64) domainStats.Result {
	return ModeWithOrder(numbers, ModeOrderAscending)
}

// ModeWithOrder is Mode with an explicit ordering for tied modes.
func ModeWithOrder(numbers []float64, order ModeOrder) domainStats.Result {
	if len(numbers) == 0 {
		return domainStats.Unavailable(domainStats.KindMode)
	}
	table := NewFrequencyTable(numbers)
	if !table.HasMode() {
		return domainStats.Textual(domainStats.KindMode, NoModeText, len(numbers))
	}
	return domainStats.Textual(domainStats.KindMode, JoinNumbers(table.Modes(order)), len(numbers))
}
