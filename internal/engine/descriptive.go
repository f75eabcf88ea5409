package engine

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	domainStats "statcalc/domain/stats"
)

// Mean returns the arithmetic average, or Unavailable for an empty list.
func Mean(numbers []float64) domainStats.Result {
	if len(numbers) == 0 {
		return domainStats.Unavailable(domainStats.KindMean)
	}
	mean, err := stats.Mean(numbers)
	if err != nil {
		return domainStats.Unavailable(domainStats.KindMean)
	}
	return domainStats.Number(domainStats.KindMean, mean, len(numbers))
}

// SumSquaredDeviations returns Σ(xᵢ - x̄)² and whether it could be computed.
// A single observation has no spread; overflowing data reports false.
func SumSquaredDeviations(numbers []float64) (float64, bool) {
	switch len(numbers) {
	case 0:
		return 0, false
	case 1:
		return 0, true
	}
	variance, ok := Variance(numbers)
	if !ok {
		return 0, false
	}
	ss := variance * float64(len(numbers)-1)
	if !finite(ss) {
		return 0, false
	}
	return ss, true
}

// Variance returns the sample variance (divisor n-1). Fewer than two
// observations yields Unavailable.
func Variance(numbers []float64) (float64, bool) {
	if len(numbers) < 2 {
		return 0, false
	}
	variance, err := stats.SampleVariance(numbers)
	if err != nil || !finite(variance) {
		return 0, false
	}
	return variance, true
}

// StandardDeviation returns the sample standard deviation, the square root of
// the Bessel-corrected variance. Fewer than two observations yields Unavailable.
func StandardDeviation(numbers []float64) domainStats.Result {
	if len(numbers) < 2 {
		return domainStats.Unavailable(domainStats.KindStandardDeviation)
	}
	sd, err := stats.StandardDeviationSample(numbers)
	if err != nil {
		return domainStats.Unavailable(domainStats.KindStandardDeviation)
	}
	return domainStats.Number(domainStats.KindStandardDeviation, sd, len(numbers))
}

// Median returns the middle value of a sorted copy of numbers, or the average
// of the two middle values when the count is even. The input is not reordered.
func Median(numbers []float64) domainStats.Result {
	if len(numbers) == 0 {
		return domainStats.Unavailable(domainStats.KindMedian)
	}
	median, err := stats.Median(numbers)
	if err != nil {
		return domainStats.Unavailable(domainStats.KindMedian)
	}
	return domainStats.Number(domainStats.KindMedian, median, len(numbers))
}

// SortedCopy returns numbers in ascending order without touching the input.
func SortedCopy(numbers []float64) []float64 {
	sorted := make([]float64, len(numbers))
	copy(sorted, numbers)
	sort.Float64s(sorted)
	return sorted
}

// Sum returns Σxᵢ, or false for an empty list or an overflowing total.
func Sum(numbers []float64) (float64, bool) {
	total, err := stats.Sum(numbers)
	if err != nil || !finite(total) {
		return 0, false
	}
	return total, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
