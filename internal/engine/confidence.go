package engine

import (
	"fmt"
	"math"

	"statcalc/domain/core"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	DefaultMarginPercent     = 5.0
	DefaultConfidencePercent = 95.0
)

// ConfidenceLevel pairs a confidence percentage with its critical z value.
type ConfidenceLevel struct {
	Percent float64 `json:"percent"`
	Z       float64 `json:"z"`
}

// Label renders the picker label, e.g. "95% (Z=1.965)".
func (c ConfidenceLevel) Label() string {
	return fmt.Sprintf("%s%% (Z=%s)", FormatNumber(c.Percent), FormatNumber(c.Z))
}

// ShortLabel renders just the percentage, e.g. "95%".
func (c ConfidenceLevel) ShortLabel() string {
	return FormatNumber(c.Percent) + "%"
}

// The calculators offer these levels. 1.965 is kept for 95% as published in the
// calculators' formula sheet rather than the textbook 1.96.
var standardConfidenceLevels = []ConfidenceLevel{
	{Percent: 90, Z: 1.645},
	{Percent: 95, Z: 1.965},
	{Percent: 99, Z: 2.576},
}

var marginOptions = []float64{1, 3, 5, 7, 10}

// ConfidenceLevels returns the selectable confidence levels.
func ConfidenceLevels() []ConfidenceLevel {
	out := make([]ConfidenceLevel, len(standardConfidenceLevels))
	copy(out, standardConfidenceLevels)
	return out
}

// MarginOptions returns the selectable margins of error, in percent.
func MarginOptions() []float64 {
	out := make([]float64, len(marginOptions))
	copy(out, marginOptions)
	return out
}

// ZScore returns the two-sided critical value for a confidence percentage.
// Standard levels use the fixed table; any other level in (0, 100) is
// resolved through the standard normal quantile.
func ZScore(percent float64) (float64, error) {
	for _, level := range standardConfidenceLevels {
		if level.Percent == percent {
			return level.Z, nil
		}
	}
	if math.IsNaN(percent) || percent <= 0 || percent >= 100 {
		return 0, core.NewParamError("confidence", fmt.Sprintf("level must be between 0 and 100, got %v", percent))
	}
	alpha := 1 - percent/100
	return distuv.UnitNormal.Quantile(1 - alpha/2), nil
}

// LevelForZ finds the standard confidence level whose z value is z.
func LevelForZ(z float64) (ConfidenceLevel, bool) {
	for _, level := range standardConfidenceLevels {
		if level.Z == z {
			return level, true
		}
	}
	return ConfidenceLevel{}, false
}
