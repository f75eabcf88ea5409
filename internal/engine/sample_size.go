package engine

import (
	"math"

	domainStats "statcalc/domain/stats"
)

// Proportion assumed for sample-size estimation. p = q = 0.5 maximizes p·q.
const (
	assumedProportion  = 0.5
	proportionVariance = assumedProportion * (1 - assumedProportion)
)

func positiveFinite(v float64) bool {
	return finite(v) && v > 0
}

// FiniteSampleSize returns the sample size needed for a population of size
// population at the given margin of error (in percent) and z-score:
//
//	n = (N·z²·pq) / (e²·(N−1) + z²·pq), rounded up.
//
// Any non-positive or non-finite input yields Unavailable.
func FiniteSampleSize(population, marginPercent, z float64) domainStats.Result {
	e := marginPercent / 100
	if !positiveFinite(population) || !positiveFinite(e) || !positiveFinite(z) {
		return domainStats.Unavailable(domainStats.KindFiniteSampleSize)
	}

	numerator := population * z * z * proportionVariance
	denominator := e*e*(population-1) + z*z*proportionVariance
	size := numerator / denominator

	return domainStats.Number(domainStats.KindFiniteSampleSize, math.Ceil(size), 0)
}

// InfiniteSampleSize returns the sample size for a population large enough to
// ignore the finite correction: n = (z²·pq) / e², rounded up.
func InfiniteSampleSize(marginPercent, z float64) domainStats.Result {
	e := marginPercent / 100
	if !positiveFinite(e) || !positiveFinite(z) {
		return domainStats.Unavailable(domainStats.KindInfiniteSampleSize)
	}

	size := (z * z * assumedProportion * (1 - assumedProportion)) / (e * e)
	return domainStats.Number(domainStats.KindInfiniteSampleSize, math.Ceil(size), 0)
}
