package rules

import "time"

// Increase describes the delta between the latest reading in a series and an
// earlier reading within some window of it.
type Increase struct {
	Delta float64
	From  Reading
	To    Reading
}

// MaxIncrease returns the largest delta between the latest reading and any
// earlier reading taken within window of it. ok is false when the series
// holds fewer than two readings or no earlier reading falls inside the
// window. Identical values produce a zero delta, never a phantom gain.
// Missing days are tolerated; nothing is interpolated.
func MaxIncrease(series []Reading, window time.Duration) (Increase, bool) {
	if len(series) < 2 {
		return Increase{}, false
	}
	sorted := sortedByTime(series)
	latest := sorted[len(sorted)-1]

	var best Increase
	found := false
	for _, r := range sorted[:len(sorted)-1] {
		if latest.Taken.Sub(r.Taken) > window {
			continue
		}
		d := latest.Value - r.Value
		if !found || d > best.Delta {
			best = Increase{Delta: d, From: r, To: latest}
			found = true
		}
	}
	return best, found
}

// HasPersistentCondition reports whether minConsecutive readings on adjacent
// calendar days all satisfy pred. A missing day is a gap and resets the
// streak; same-day duplicates neither extend nor reset it. A single reading
// never counts as persistent, so minConsecutive values below 2 are raised
// to 2.
func HasPersistentCondition(series []Reading, pred func(float64) bool, minConsecutive int) bool {
	if minConsecutive < 2 {
		minConsecutive = 2
	}

	streak := 0
	var prevDay time.Time
	for _, r := range sortedByTime(series) {
		day := Day(r.Taken)
		if !pred(r.Value) {
			streak = 0
			continue
		}
		switch {
		case streak > 0 && day.Equal(prevDay):
			// same-day duplicate
		case streak > 0 && day.Equal(prevDay.AddDate(0, 0, 1)):
			streak++
		default:
			streak = 1
		}
		prevDay = day
		if streak >= minConsecutive {
			return true
		}
	}
	return false
}
