package observation

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartlog/heartlog/internal/domain/rules"
)

// VitalKind identifies one scalar vital series. Blood pressure is stored as
// two rows (systolic and diastolic) sharing one Taken timestamp.
type VitalKind string

const (
	VitalWeight    VitalKind = "weight"
	VitalHeartRate VitalKind = "heart-rate"
	VitalSystolic  VitalKind = "systolic"
	VitalDiastolic VitalKind = "diastolic"
	VitalSpO2      VitalKind = "spo2"
)

// Valid reports whether k is a known vital kind.
func (k VitalKind) Valid() bool {
	switch k {
	case VitalWeight, VitalHeartRate, VitalSystolic, VitalDiastolic, VitalSpO2:
		return true
	}
	return false
}

// VitalReading maps to the vital_reading table. The table keeps one
// authoritative value per kind per calendar day; saving again on the same day
// replaces the earlier value.
type VitalReading struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Kind      VitalKind `db:"kind" json:"kind"`
	Value     float64   `db:"value" json:"value"`
	Taken     time.Time `db:"taken" json:"taken"`
	Day       time.Time `db:"day" json:"day"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Reading converts the row into the evaluator's value type.
func (r VitalReading) Reading() rules.Reading {
	return rules.Reading{Value: r.Value, Taken: r.Taken}
}

// SymptomEntry maps to the symptom_entry table: one row per calendar day, one
// nullable column per tracked symptom. A symptom the patient skipped stays
// NULL, which the evaluator treats as not recorded.
type SymptomEntry struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Day            time.Time `db:"day" json:"day"`
	Breathlessness *int      `db:"breathlessness" json:"breathlessness,omitempty"`
	Orthopnea      *int      `db:"orthopnea" json:"orthopnea,omitempty"`
	Fatigue        *int      `db:"fatigue" json:"fatigue,omitempty"`
	Swelling       *int      `db:"swelling" json:"swelling,omitempty"`
	Cough          *int      `db:"cough" json:"cough,omitempty"`
	Dizziness      *int      `db:"dizziness" json:"dizziness,omitempty"`
	Palpitations   *int      `db:"palpitations" json:"palpitations,omitempty"`
	AppetiteLoss   *int      `db:"appetite_loss" json:"appetite_loss,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

func (e *SymptomEntry) column(kind rules.SymptomKind) **int {
	switch kind {
	case rules.SymptomBreathlessness:
		return &e.Breathlessness
	case rules.SymptomOrthopnea:
		return &e.Orthopnea
	case rules.SymptomFatigue:
		return &e.Fatigue
	case rules.SymptomSwelling:
		return &e.Swelling
	case rules.SymptomCough:
		return &e.Cough
	case rules.SymptomDizziness:
		return &e.Dizziness
	case rules.SymptomPalpitations:
		return &e.Palpitations
	case rules.SymptomAppetiteLoss:
		return &e.AppetiteLoss
	default:
		return nil
	}
}

// Set stores a severity for kind; unknown kinds are ignored.
func (e *SymptomEntry) Set(kind rules.SymptomKind, severity int) {
	if col := e.column(kind); col != nil {
		v := severity
		*col = &v
	}
}

// Record converts the row into the evaluator's per-day value type.
func (e *SymptomEntry) Record() rules.SymptomRecord {
	rec := rules.SymptomRecord{Day: e.Day, Severities: make(map[rules.SymptomKind]int)}
	for _, kind := range rules.SymptomKinds() {
		if col := e.column(kind); col != nil && *col != nil {
			rec.Severities[kind] = **col
		}
	}
	return rec
}
