package observation

import (
	"context"
	"time"
)

type ObservationRepository interface {
	// UpsertVital saves a reading, replacing any earlier value for the same
	// kind and calendar day.
	UpsertVital(ctx context.Context, r *VitalReading) error
	// VitalSeries returns readings of one kind with Day in [from, to],
	// ordered by day ascending.
	VitalSeries(ctx context.Context, kind VitalKind, from, to time.Time) ([]VitalReading, error)

	// UpsertSymptoms saves a day's severities, replacing only the columns the
	// entry carries; columns left nil in e keep their stored value.
	UpsertSymptoms(ctx context.Context, e *SymptomEntry) error
	// SymptomEntryForDay returns the entry for one calendar day, or nil when
	// the patient logged nothing that day.
	SymptomEntryForDay(ctx context.Context, day time.Time) (*SymptomEntry, error)
	ListSymptomEntries(ctx context.Context, from, to time.Time) ([]SymptomEntry, error)
}
