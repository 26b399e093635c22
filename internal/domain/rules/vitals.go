package rules

import (
	"fmt"
	"time"
)

// VitalHistory is the read-only snapshot of vital series handed to the
// vitals evaluator. Series the patient never records are simply empty.
type VitalHistory struct {
	HeartRate []Reading
	SpO2      []Reading
	BP        []BPReading
}

// VitalsEvaluator applies the heart-rate, oxygen-saturation, and
// blood-pressure rules. Each rule is independent; one reading may yield both
// a low-bp and a low-map finding because they carry different rationale.
type VitalsEvaluator interface {
	Evaluate(h VitalHistory) []Finding
}

type vitalsEvaluator struct {
	th  Thresholds
	now func() time.Time
}

// NewVitalsEvaluator returns the standard vital-signs evaluator. A nil clock
// means wall-clock time.
func NewVitalsEvaluator(th Thresholds, clock func() time.Time) VitalsEvaluator {
	if clock == nil {
		clock = time.Now
	}
	return &vitalsEvaluator{th: th, now: clock}
}

func (e *vitalsEvaluator) Evaluate(h VitalHistory) []Finding {
	var findings []Finding

	// Heart rate alerts only after a run of consecutive extreme daily
	// readings; one odd reading is indistinguishable from wearable noise.
	extreme := func(v float64) bool {
		return v < e.th.HeartRateLow || v > e.th.HeartRateHigh
	}
	if HasPersistentCondition(h.HeartRate, extreme, e.th.HeartRateStreak) {
		findings = append(findings, Finding{
			Kind: AlertHeartRate,
			Message: fmt.Sprintf(
				"Your heart rate has been outside the %.0f-%.0f range for several days in a row. Please check in with your clinician.",
				e.th.HeartRateLow, e.th.HeartRateHigh),
			Evidence:    Evidence{Readings: trailingStreak(h.HeartRate, extreme)},
			GeneratedAt: e.now(),
		})
	}

	// Desaturation is flagged from a single reading; no persistence
	// requirement.
	if spo2, ok := latestReading(h.SpO2); ok && spo2.Value < e.th.SpO2Low {
		findings = append(findings, Finding{
			Kind: AlertLowSpO2,
			Message: fmt.Sprintf(
				"Your oxygen level reading of %.0f%% is lower than expected. Please contact your clinician soon.",
				spo2.Value),
			Evidence:    Evidence{Readings: []Reading{spo2}},
			GeneratedAt: e.now(),
		})
	}

	if bp, ok := latestBP(h.BP); ok {
		if bp.Systolic < e.th.SystolicLow {
			b := bp
			findings = append(findings, Finding{
				Kind: AlertLowBP,
				Message: fmt.Sprintf(
					"Your systolic blood pressure of %.0f is on the low side. Take it easy when standing, and let your care team know.",
					bp.Systolic),
				Evidence:    Evidence{BP: &b},
				GeneratedAt: e.now(),
			})
		}
		if bp.MAP() <= e.th.MAPLow {
			b := bp
			findings = append(findings, Finding{
				Kind: AlertLowMAP,
				Message: "Your blood pressure reading suggests reduced circulation. This is worth discussing with your clinician.",
				Evidence:    Evidence{BP: &b},
				GeneratedAt: e.now(),
			})
		}
	}

	return findings
}

// latestReading returns the most recent reading in series.
func latestReading(series []Reading) (Reading, bool) {
	if len(series) == 0 {
		return Reading{}, false
	}
	sorted := sortedByTime(series)
	return sorted[len(sorted)-1], true
}

// latestBP returns the most recent blood-pressure pair.
func latestBP(series []BPReading) (BPReading, bool) {
	if len(series) == 0 {
		return BPReading{}, false
	}
	best := series[0]
	for _, r := range series[1:] {
		if r.Taken.After(best.Taken) {
			best = r
		}
	}
	return best, true
}

// trailingStreak returns the run of pred-satisfying readings at the end of
// the series, for use as finding evidence.
func trailingStreak(series []Reading, pred func(float64) bool) []Reading {
	sorted := sortedByTime(series)
	i := len(sorted)
	for i > 0 && pred(sorted[i-1].Value) {
		i--
	}
	return sorted[i:]
}
