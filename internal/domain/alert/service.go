package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartlog/heartlog/internal/domain/rules"
)

type Service struct {
	alerts AlertRepository
}

func NewService(alerts AlertRepository) *Service {
	return &Service{alerts: alerts}
}

// Record writes evaluator findings into the ledger. Each finding lands on the
// calendar day it was generated; a kind that already has an entry for that day
// is dropped, so the first finding wins and repeat evaluations are free.
func (s *Service) Record(ctx context.Context, findings []rules.Finding) error {
	for _, f := range findings {
		if !f.Kind.Valid() {
			return fmt.Errorf("unknown alert kind: %s", f.Kind)
		}
		evidence, err := json.Marshal(f.Evidence)
		if err != nil {
			return fmt.Errorf("marshal evidence for %s: %w", f.Kind, err)
		}
		e := &Entry{
			Kind:        f.Kind,
			Message:     f.Message,
			Evidence:    evidence,
			Day:         rules.Day(f.GeneratedAt),
			GeneratedAt: f.GeneratedAt,
		}
		if _, err := s.alerts.Record(ctx, e); err != nil {
			return fmt.Errorf("record %s alert: %w", f.Kind, err)
		}
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.alerts.GetByID(ctx, id)
}

// Acknowledge marks an entry as seen. Acknowledging twice keeps the first
// timestamp; entries are never un-acknowledged.
func (s *Service) Acknowledge(ctx context.Context, id uuid.UUID) error {
	if err := s.alerts.Acknowledge(ctx, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("acknowledge alert: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Entry, int, error) {
	return s.alerts.List(ctx, limit, offset)
}

func (s *Service) ListUnacknowledged(ctx context.Context) ([]*Entry, error) {
	return s.alerts.ListUnacknowledged(ctx)
}

// DismissConflictBanner hides the medication-conflict banner until the given
// moment. A zero until snoozes it for a day.
func (s *Service) DismissConflictBanner(ctx context.Context, until time.Time) error {
	now := time.Now().UTC()
	if until.IsZero() {
		until = now.Add(24 * time.Hour)
	}
	if !until.After(now) {
		return fmt.Errorf("dismissal must end in the future")
	}
	if err := s.alerts.DismissConflictBanner(ctx, until.UTC()); err != nil {
		return fmt.Errorf("dismiss conflict banner: %w", err)
	}
	return nil
}

func (s *Service) ConflictBannerDismissal(ctx context.Context) (*BannerDismissal, error) {
	return s.alerts.ConflictBannerDismissal(ctx)
}
