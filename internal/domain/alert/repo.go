package alert

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AlertRepository interface {
	// Record inserts the entry unless one with the same kind and day already
	// exists. It reports whether the entry was actually inserted.
	Record(ctx context.Context, e *Entry) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	// Acknowledge marks the entry acknowledged at the given time. Entries that
	// are already acknowledged keep their original timestamp.
	Acknowledge(ctx context.Context, id uuid.UUID, at time.Time) error
	List(ctx context.Context, limit, offset int) ([]*Entry, int, error)
	ListUnacknowledged(ctx context.Context) ([]*Entry, error)

	DismissConflictBanner(ctx context.Context, until time.Time) error
	// ConflictBannerDismissal returns the current dismissal, or nil when the
	// banner has never been dismissed.
	ConflictBannerDismissal(ctx context.Context) (*BannerDismissal, error)
}
