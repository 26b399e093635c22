package rules

import (
	"fmt"
	"time"
)

// WeightEvaluator applies the weight-gain rules to a daily weight series.
type WeightEvaluator interface {
	Evaluate(series []Reading) []Finding
}

type weightEvaluator struct {
	th  Thresholds
	now func() time.Time
}

// NewWeightEvaluator returns the standard weight-trend evaluator. A nil
// clock means wall-clock time.
func NewWeightEvaluator(th Thresholds, clock func() time.Time) WeightEvaluator {
	if clock == nil {
		clock = time.Now
	}
	return &weightEvaluator{th: th, now: clock}
}

// Evaluate checks the 24-hour and 7-day gain rules independently. When both
// fire it emits a single finding citing the larger-magnitude trigger; a
// duplicate same-day alert helps nobody. Fewer than two readings can never
// produce a finding.
func (e *weightEvaluator) Evaluate(series []Reading) []Finding {
	day, okDay := MaxIncrease(series, 24*time.Hour)
	week, okWeek := MaxIncrease(series, 7*24*time.Hour)

	firedDay := okDay && day.Delta >= e.th.WeightGain24hLb
	firedWeek := okWeek && week.Delta >= e.th.WeightGain7dLb

	switch {
	case !firedDay && !firedWeek:
		return nil
	case firedDay && (!firedWeek || day.Delta > week.Delta):
		return []Finding{e.finding(day, "24h")}
	default:
		// Equal deltas cite the 7-day rule: it names the wider window.
		return []Finding{e.finding(week, "7d")}
	}
}

func (e *weightEvaluator) finding(inc Increase, window string) Finding {
	span := "since yesterday"
	if window == "7d" {
		span = fmt.Sprintf("since %s", inc.From.Taken.Format("January 2"))
	}
	return Finding{
		Kind: AlertWeightGain,
		Message: fmt.Sprintf(
			"Your weight is up %.1f lb %s. Fluid can build up quietly, so it's worth mentioning this to your care team.",
			inc.Delta, span),
		Evidence: Evidence{
			Readings: []Reading{inc.From, inc.To},
			Window:   window,
		},
		GeneratedAt: e.now(),
	}
}
