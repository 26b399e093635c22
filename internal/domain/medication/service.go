package medication

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrConflictsDetected is returned by Create when the new medication
// conflicts with the existing list and the caller has not confirmed with
// force. The conflicts themselves accompany the error so the UI can show
// them in the "add anyway?" prompt.
var ErrConflictsDetected = errors.New("medication conflicts detected")

type Service struct {
	meds MedicationRepository
}

func NewService(meds MedicationRepository) *Service {
	return &Service{meds: meds}
}

// Create adds a medication. When the caller does not pick a category the
// preset table fills it in; unknown names stay uncategorized. Conflicts
// against the current list are checked before persisting; without force the
// medication is not saved and the conflicts are returned alongside
// ErrConflictsDetected.
func (s *Service) Create(ctx context.Context, m *Medication, force bool) ([]ConflictRecord, error) {
	if m.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if m.Category != nil && !m.Category.Valid() {
		return nil, fmt.Errorf("invalid category: %s", *m.Category)
	}
	if m.Category == nil {
		if p, ok := LookupPreset(m.Name); ok {
			m.Category = p.Category
			if p.Diuretic {
				m.Diuretic = true
			}
		}
	}
	m.Active = true

	var conflicts []ConflictRecord
	if m.Categorized() {
		existing, err := s.meds.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("list active medications: %w", err)
		}
		conflicts = CheckConflicts(*m.Category, deref(existing))
		if len(conflicts) > 0 && !force {
			return conflicts, ErrConflictsDetected
		}
	}

	if err := s.meds.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create medication: %w", err)
	}
	return conflicts, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return s.meds.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Medication, int, error) {
	return s.meds.List(ctx, limit, offset)
}

// ListActive returns the current medication list, the snapshot every
// conflict recomputation runs over.
func (s *Service) ListActive(ctx context.Context) ([]*Medication, error) {
	return s.meds.ListActive(ctx)
}

// Deactivate soft-deletes a medication. Rows are never removed while dose
// history may reference them; an inactive medication is invisible to the
// conflict engine.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.meds.Deactivate(ctx, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate medication: %w", err)
	}
	return nil
}

// FindAllConflicts recomputes the full conflict set for the dismissible
// banner.
func (s *Service) FindAllConflicts(ctx context.Context) ([]ConflictRecord, error) {
	active, err := s.meds.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active medications: %w", err)
	}
	return FindAllConflicts(deref(active)), nil
}

// CheckConflicts previews the conflicts a candidate category would introduce.
func (s *Service) CheckConflicts(ctx context.Context, candidate TherapeuticCategory) ([]ConflictRecord, error) {
	if !candidate.Valid() {
		return nil, fmt.Errorf("invalid category: %s", candidate)
	}
	active, err := s.meds.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active medications: %w", err)
	}
	return CheckConflicts(candidate, deref(active)), nil
}

func deref(meds []*Medication) []Medication {
	out := make([]Medication, 0, len(meds))
	for _, m := range meds {
		out = append(out, *m)
	}
	return out
}
