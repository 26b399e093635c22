package rules

import (
	"strings"
	"testing"
	"time"
)

func newTestSymptomEvaluator(now time.Time) *symptomEvaluator {
	return &symptomEvaluator{
		th:  DefaultThresholds(),
		now: func() time.Time { return now },
	}
}

func record(severities map[SymptomKind]int) SymptomRecord {
	return SymptomRecord{Day: Day(base), Severities: severities}
}

func TestSevereSymptomsAlertIndividually(t *testing.T) {
	e := newTestSymptomEvaluator(base)

	today := record(map[SymptomKind]int{
		SymptomBreathlessness: 4,
		SymptomSwelling:       5,
		SymptomFatigue:        3,
		SymptomCough:          1,
	})

	findings := e.Evaluate(today, nil)
	got := kinds(findings)
	if got[AlertSymptomSeverity] != 2 {
		t.Fatalf("severity findings = %d, want one per severe symptom (2)", got[AlertSymptomSeverity])
	}

	seen := make(map[SymptomKind]bool)
	for _, f := range findings {
		if f.Kind == AlertSymptomSeverity {
			seen[f.Evidence.Symptom] = true
		}
	}
	if !seen[SymptomBreathlessness] || !seen[SymptomSwelling] {
		t.Fatalf("findings cite %v, want breathlessness and swelling", seen)
	}
}

func TestSeverityBelowThresholdIsQuiet(t *testing.T) {
	e := newTestSymptomEvaluator(base)
	today := record(map[SymptomKind]int{
		SymptomBreathlessness: 3,
		SymptomFatigue:        3,
	})
	// A recent BP reading keeps the dizziness rule out of the picture.
	if findings := e.Evaluate(today, nil); len(findings) != 0 {
		t.Fatalf("severity 3 produced findings: %v", findings)
	}
}

func TestSeverityClampedDefensively(t *testing.T) {
	e := newTestSymptomEvaluator(base)

	// Out-of-range input from a buggy caller is clamped, never an error.
	today := record(map[SymptomKind]int{SymptomSwelling: 11})
	findings := e.Evaluate(today, nil)
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(findings))
	}
	if findings[0].Evidence.Severity != MaxSeverity {
		t.Fatalf("severity = %d, want clamped to %d", findings[0].Evidence.Severity, MaxSeverity)
	}

	today = record(map[SymptomKind]int{SymptomSwelling: -2})
	if findings := e.Evaluate(today, nil); len(findings) != 0 {
		t.Fatalf("negative severity clamps to %d and stays quiet, got %v", MinSeverity, findings)
	}
}

func TestDizzinessBPCheck(t *testing.T) {
	now := base.AddDate(0, 0, 5)

	tests := []struct {
		name      string
		dizziness int
		bpAge     time.Duration
		hasBP     bool
		want      bool
	}{
		{"dizzy, BP 23 hours old", 3, 23 * time.Hour, true, false},
		{"dizzy, BP 25 hours old", 3, 25 * time.Hour, true, true},
		{"dizzy, no BP at all", 3, 0, false, true},
		{"mild dizziness", 2, 0, false, false},
		{"severe dizziness also triggers the severity rule", 4, 25 * time.Hour, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestSymptomEvaluator(now)
			var recent []BPReading
			if tt.hasBP {
				recent = []BPReading{{Systolic: 118, Diastolic: 76, Taken: now.Add(-tt.bpAge)}}
			}
			today := record(map[SymptomKind]int{SymptomDizziness: tt.dizziness})

			got := kinds(e.Evaluate(today, recent))
			if (got[AlertDizzinessBPCheck] == 1) != tt.want {
				t.Fatalf("dizziness-bp-check fired = %v, want %v", got[AlertDizzinessBPCheck] == 1, tt.want)
			}
		})
	}
}

func TestDizzinessGuidanceText(t *testing.T) {
	e := newTestSymptomEvaluator(base)
	today := record(map[SymptomKind]int{SymptomDizziness: 3})

	findings := e.Evaluate(today, nil)
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(findings))
	}
	msg := findings[0].Message
	for _, phrase := range []string{"blood pressure", "stand up slowly", "clinician"} {
		if !strings.Contains(msg, phrase) {
			t.Fatalf("guidance %q missing phrase %q", msg, phrase)
		}
	}
}

func TestAbsentRecordedSymptomsAreQuiet(t *testing.T) {
	e := newTestSymptomEvaluator(base)
	if findings := e.Evaluate(record(nil), nil); len(findings) != 0 {
		t.Fatalf("empty record produced findings: %v", findings)
	}
}
