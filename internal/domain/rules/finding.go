package rules

import "time"

// AlertKind tags a finding with the rule that produced it.
type AlertKind string

const (
	AlertWeightGain         AlertKind = "weight-gain"
	AlertHeartRate          AlertKind = "heart-rate"
	AlertLowSpO2            AlertKind = "low-spo2"
	AlertLowBP              AlertKind = "low-bp"
	AlertLowMAP             AlertKind = "low-map"
	AlertSymptomSeverity    AlertKind = "symptom-severity"
	AlertDizzinessBPCheck   AlertKind = "dizziness-bp-check"
	AlertMedicationConflict AlertKind = "medication-conflict"
)

// Valid reports whether k is a known alert kind.
func (k AlertKind) Valid() bool {
	switch k {
	case AlertWeightGain, AlertHeartRate, AlertLowSpO2, AlertLowBP,
		AlertLowMAP, AlertSymptomSeverity, AlertDizzinessBPCheck,
		AlertMedicationConflict:
		return true
	}
	return false
}

// Evidence carries the readings or medications that triggered a finding.
// Only the fields relevant to the finding's kind are populated.
type Evidence struct {
	Readings    []Reading   `json:"readings,omitempty"`
	BP          *BPReading  `json:"bp,omitempty"`
	Symptom     SymptomKind `json:"symptom,omitempty"`
	Severity    int         `json:"severity,omitempty"`
	Medications []string    `json:"medications,omitempty"`
	Window      string      `json:"window,omitempty"`
}

// Finding is one detected condition. Findings are pure values: evaluators
// return them and hold no state; persistence and acknowledgment belong to the
// alert ledger.
type Finding struct {
	Kind        AlertKind `json:"kind"`
	Message     string    `json:"message"`
	Evidence    Evidence  `json:"evidence"`
	GeneratedAt time.Time `json:"generated_at"`
}
