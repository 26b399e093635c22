package rules

import (
	"fmt"
	"time"
)

// SymptomEvaluator applies the per-symptom severity rule and the combined
// dizziness check. It never fetches health data itself; the caller hands it
// today's record and the recent blood-pressure slice, keeping it a pure
// function.
type SymptomEvaluator interface {
	Evaluate(today SymptomRecord, recentBP []BPReading) []Finding
}

type symptomEvaluator struct {
	th  Thresholds
	now func() time.Time
}

// NewSymptomEvaluator returns the standard symptom-severity evaluator. A nil
// clock means wall-clock time.
func NewSymptomEvaluator(th Thresholds, clock func() time.Time) SymptomEvaluator {
	if clock == nil {
		clock = time.Now
	}
	return &symptomEvaluator{th: th, now: clock}
}

func (e *symptomEvaluator) Evaluate(today SymptomRecord, recentBP []BPReading) []Finding {
	var findings []Finding

	// One finding per severe symptom. Each symptom is independently
	// clinically meaningful, so they are not collapsed.
	for _, kind := range SymptomKinds() {
		sev, ok := today.Severity(kind)
		if !ok || sev < e.th.SymptomAlertSeverity {
			continue
		}
		findings = append(findings, Finding{
			Kind: AlertSymptomSeverity,
			Message: fmt.Sprintf(
				"You rated your %s as %d out of %d today. When a symptom feels this strong, it's a good idea to contact your clinician.",
				symptomLabel(kind), sev, MaxSeverity),
			Evidence:    Evidence{Symptom: kind, Severity: sev},
			GeneratedAt: e.now(),
		})
	}

	if sev, ok := today.Severity(SymptomDizziness); ok &&
		sev >= e.th.DizzinessSeverity &&
		!hasBPWithin(recentBP, e.th.BPRecency, e.now()) {
		findings = append(findings, Finding{
			Kind: AlertDizzinessBPCheck,
			Message: "You've been feeling dizzy and haven't checked your blood pressure in the last day. " +
				"If you can, take a reading now, and remember to stand up slowly. " +
				"If you're unable to check it, consider contacting your clinician.",
			Evidence:    Evidence{Symptom: SymptomDizziness, Severity: sev},
			GeneratedAt: e.now(),
		})
	}

	return findings
}

func hasBPWithin(readings []BPReading, window time.Duration, now time.Time) bool {
	for _, r := range readings {
		if now.Sub(r.Taken) <= window && !r.Taken.After(now) {
			return true
		}
	}
	return false
}

func symptomLabel(kind SymptomKind) string {
	switch kind {
	case SymptomBreathlessness:
		return "breathlessness"
	case SymptomOrthopnea:
		return "difficulty breathing while lying down"
	case SymptomFatigue:
		return "fatigue"
	case SymptomSwelling:
		return "swelling"
	case SymptomCough:
		return "cough"
	case SymptomDizziness:
		return "dizziness"
	case SymptomPalpitations:
		return "palpitations"
	case SymptomAppetiteLoss:
		return "loss of appetite"
	default:
		return string(kind)
	}
}
