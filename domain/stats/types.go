package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"statcalc/domain/core"
)

// ============================================================================
// STATISTIC KINDS
// ============================================================================

// Kind names one calculator statistic.
type Kind string

const (
	KindMean               Kind = "mean"
	KindMedian             Kind = "median"
	KindMode               Kind = "mode"
	KindStandardDeviation  Kind = "standard_deviation"
	KindFiniteSampleSize   Kind = "finite_sample_size"
	KindInfiniteSampleSize Kind = "infinite_sample_size"
)

// ValueType describes how a result value is rendered.
type ValueType string

const (
	ValueContinuous ValueType = "continuous" // rounded to a fixed number of decimals
	ValueCount      ValueType = "count"      // whole number (sample sizes)
	ValueText       ValueType = "text"       // free text (mode)
)

var kindAliases = map[string]Kind{
	"mean":                 KindMean,
	"media":                KindMean,
	"average":              KindMean,
	"median":               KindMedian,
	"mediana":              KindMedian,
	"mode":                 KindMode,
	"moda":                 KindMode,
	"standard_deviation":   KindStandardDeviation,
	"standard-deviation":   KindStandardDeviation,
	"stddev":               KindStandardDeviation,
	"std":                  KindStandardDeviation,
	"finite_sample_size":   KindFiniteSampleSize,
	"finite-sample-size":   KindFiniteSampleSize,
	"finite":               KindFiniteSampleSize,
	"infinite_sample_size": KindInfiniteSampleSize,
	"infinite-sample-size": KindInfiniteSampleSize,
	"infinite":             KindInfiniteSampleSize,
}

// AllKinds lists the statistics in drawer order.
func AllKinds() []Kind {
	return []Kind{
		KindFiniteSampleSize,
		KindInfiniteSampleSize,
		KindMean,
		KindMode,
		KindStandardDeviation,
		KindMedian,
	}
}

// DescriptiveKinds lists the statistics computed from a number list.
func DescriptiveKinds() []Kind {
	return []Kind{KindMean, KindMedian, KindMode, KindStandardDeviation}
}

// ParseKind resolves a user-supplied statistic name, accepting common aliases.
func ParseKind(s string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if k, ok := kindAliases[key]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownStatistic, s)
}

// IsDescriptive reports whether the statistic consumes a number list.
func (k Kind) IsDescriptive() bool {
	switch k {
	case KindMean, KindMedian, KindMode, KindStandardDeviation:
		return true
	}
	return false
}

// ValueType returns how results of this statistic are displayed.
func (k Kind) ValueType() ValueType {
	switch k {
	case KindMode:
		return ValueText
	case KindFiniteSampleSize, KindInfiniteSampleSize:
		return ValueCount
	default:
		return ValueContinuous
	}
}

func (k Kind) String() string { return string(k) }

// ============================================================================
// RESULTS
// ============================================================================

// Status tags a Result as carrying a value or not.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
)

// Result is the outcome of one statistic computation. Insufficient or invalid
// data is never an error: it is a Result with StatusUnavailable.
type Result struct {
	Kind   Kind    `json:"kind"`
	Status Status  `json:"status"`
	Value  float64 `json:"value"`
	Text   string  `json:"text,omitempty"`
	N      int     `json:"n"` // observations the statistic was computed over
}

// Unavailable builds the absence-of-result outcome.
func Unavailable(kind Kind) Result {
	return Result{Kind: kind, Status: StatusUnavailable}
}

// Number builds a numeric result. A value that cannot be displayed, NaN or
// infinite or a count past the int64 range, is Unavailable.
func Number(kind Kind, value float64, n int) Result {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Unavailable(kind)
	}
	if kind.ValueType() == ValueCount && math.Abs(value) >= math.MaxInt64 {
		return Unavailable(kind)
	}
	return Result{Kind: kind, Status: StatusAvailable, Value: value, N: n}
}

// Textual builds a text result.
func Textual(kind Kind, text string, n int) Result {
	return Result{Kind: kind, Status: StatusAvailable, Text: text, N: n}
}

// Available reports whether the result carries a value.
func (r Result) Available() bool {
	return r.Status == StatusAvailable
}

// Format renders the result for display. Continuous values are rounded to
// decimals places, counts are shown as integers and text is returned as is.
// Unavailable results render as the empty string.
func (r Result) Format(decimals int) string {
	if !r.Available() {
		return ""
	}
	switch r.Kind.ValueType() {
	case ValueText:
		return r.Text
	case ValueCount:
		return strconv.FormatInt(int64(r.Value), 10)
	default:
		if decimals < 0 {
			decimals = 0
		}
		return strconv.FormatFloat(r.Value, 'f', decimals, 64)
	}
}
