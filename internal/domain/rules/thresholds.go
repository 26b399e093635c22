package rules

import "time"

// Thresholds is the explicit rule configuration handed to each evaluator at
// construction. Nothing in this package reads ambient global state, so tests
// (and config) can override any threshold per evaluator.
type Thresholds struct {
	// Weight gain deltas, in pounds. Inclusive: a gain equal to the
	// threshold fires.
	WeightGain24hLb float64
	WeightGain7dLb  float64

	// Heart-rate extremes (exclusive bounds) and the number of consecutive
	// daily readings required before alerting.
	HeartRateLow    float64
	HeartRateHigh   float64
	HeartRateStreak int

	// Single-reading vital bounds. SpO2 and systolic are exclusive (<);
	// MAP is inclusive (a MAP of exactly MAPLow fires).
	SpO2Low     float64
	SystolicLow float64
	MAPLow      float64

	// Symptom severities.
	SymptomAlertSeverity int
	DizzinessSeverity    int

	// How recent a blood-pressure reading must be to suppress the
	// dizziness-bp-check finding.
	BPRecency time.Duration
}

// DefaultThresholds returns the clinically informed defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		WeightGain24hLb:      2,
		WeightGain7dLb:       5,
		HeartRateLow:         40,
		HeartRateHigh:        120,
		HeartRateStreak:      3,
		SpO2Low:              90,
		SystolicLow:          90,
		MAPLow:               60,
		SymptomAlertSeverity: 4,
		DizzinessSeverity:    3,
		BPRecency:            24 * time.Hour,
	}
}
