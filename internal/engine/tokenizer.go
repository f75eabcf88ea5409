package engine

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// separatorPattern splits raw keypad input on runs of commas and spaces.
	separatorPattern = regexp.MustCompile(`[, ]+`)
	// numericPrefix matches the leading decimal number of a token, so "5%" reads as 5.
	numericPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
)

// ParseNumbers splits raw input into the finite numbers it contains, in input
// order. Tokens that do not start with a number are dropped silently; the
// result is never nil.
func ParseNumbers(raw string) []float64 {
	tokens := separatorPattern.Split(raw, -1)
	numbers := make([]float64, 0, len(tokens))
	for _, token := range tokens {
		if v, ok := ParseScalar(token); ok {
			numbers = append(numbers, v)
		}
	}
	return numbers
}

// ParseScalar reads the leading number of a single field such as a population
// or a margin of error ("5", "5%", " 1.965 "). It reports false when the field
// has no leading number or the number is not finite.
func ParseScalar(raw string) (float64, bool) {
	match := numericPrefix.FindString(strings.TrimSpace(raw))
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// FormatNumber renders a value with the shortest decimal form that reads back
// to the same float: 2 -> "2", 2.5 -> "2.5".
func FormatNumber(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// JoinNumbers formats values and joins them with ", ".
func JoinNumbers(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatNumber(v)
	}
	return strings.Join(parts, ", ")
}
