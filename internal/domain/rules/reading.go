package rules

import (
	"sort"
	"time"
)

// Reading is a single dated value for one scalar vital (weight, heart rate,
// SpO2, ...). Series are expected to hold at most one authoritative reading
// per calendar day; missing days are simply absent.
type Reading struct {
	Value float64   `json:"value"`
	Taken time.Time `json:"taken"`
}

// BPReading is one blood-pressure measurement. Systolic and diastolic always
// travel together because MAP needs both.
type BPReading struct {
	Systolic  float64   `json:"systolic"`
	Diastolic float64   `json:"diastolic"`
	Taken     time.Time `json:"taken"`
}

// MAP returns the mean arterial pressure: diastolic + (systolic-diastolic)/3.
func (r BPReading) MAP() float64 {
	return r.Diastolic + (r.Systolic-r.Diastolic)/3
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// sortedByTime returns a copy of series ordered by Taken ascending. Inputs
// are never mutated; callers hand evaluators read-only snapshots.
func sortedByTime(series []Reading) []Reading {
	out := make([]Reading, len(series))
	copy(out, series)
	sort.Slice(out, func(i, j int) bool { return out[i].Taken.Before(out[j].Taken) })
	return out
}
