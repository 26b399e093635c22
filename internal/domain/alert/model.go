package alert

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/heartlog/heartlog/internal/domain/rules"
)

// Entry maps to the alert_entry table. One entry per (kind, day): the first
// finding of a kind on a calendar day is recorded and later duplicates are
// silently dropped, so re-running the evaluators never multiplies alerts.
type Entry struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	Kind           rules.AlertKind `db:"kind" json:"kind"`
	Message        string          `db:"message" json:"message"`
	Evidence       json.RawMessage `db:"evidence" json:"evidence,omitempty"`
	Day            time.Time       `db:"day" json:"day"`
	GeneratedAt    time.Time       `db:"generated_at" json:"generated_at"`
	Acknowledged   bool            `db:"acknowledged" json:"acknowledged"`
	AcknowledgedAt *time.Time      `db:"acknowledged_at" json:"acknowledged_at,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// BannerDismissal is the single persisted piece of conflict state: the moment
// until which the medication-conflict banner stays hidden. Conflicts themselves
// are always recomputed from the live medication list.
type BannerDismissal struct {
	Until time.Time `db:"dismissed_until" json:"until"`
}
