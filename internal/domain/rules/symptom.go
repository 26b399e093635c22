package rules

import "time"

// SymptomKind identifies one of the eight tracked heart-failure symptoms.
type SymptomKind string

const (
	SymptomBreathlessness SymptomKind = "breathlessness"
	SymptomOrthopnea      SymptomKind = "orthopnea"
	SymptomFatigue        SymptomKind = "fatigue"
	SymptomSwelling       SymptomKind = "swelling"
	SymptomCough          SymptomKind = "cough"
	SymptomDizziness      SymptomKind = "dizziness"
	SymptomPalpitations   SymptomKind = "palpitations"
	SymptomAppetiteLoss   SymptomKind = "appetite-loss"
)

// SymptomKinds returns the fixed symptom set in display order.
func SymptomKinds() []SymptomKind {
	return []SymptomKind{
		SymptomBreathlessness,
		SymptomOrthopnea,
		SymptomFatigue,
		SymptomSwelling,
		SymptomCough,
		SymptomDizziness,
		SymptomPalpitations,
		SymptomAppetiteLoss,
	}
}

// Severity bounds. Values outside the range are clamped, never rejected:
// patient-facing alerting must not fail on bad upstream data.
const (
	MinSeverity = 1
	MaxSeverity = 5
)

// ClampSeverity forces s into [MinSeverity, MaxSeverity].
func ClampSeverity(s int) int {
	if s < MinSeverity {
		return MinSeverity
	}
	if s > MaxSeverity {
		return MaxSeverity
	}
	return s
}

// SymptomRecord holds the severities entered for one calendar day. A day with
// no record is absent entirely; it is never represented as all-ones.
type SymptomRecord struct {
	Day        time.Time           `json:"day"`
	Severities map[SymptomKind]int `json:"severities"`
}

// Severity returns the clamped severity for kind and whether it was recorded.
func (r SymptomRecord) Severity(kind SymptomKind) (int, bool) {
	s, ok := r.Severities[kind]
	if !ok {
		return 0, false
	}
	return ClampSeverity(s), true
}
