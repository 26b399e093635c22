package medication

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type MedicationRepository interface {
	Create(ctx context.Context, m *Medication) error
	GetByID(ctx context.Context, id uuid.UUID) (*Medication, error)
	Update(ctx context.Context, m *Medication) error
	Deactivate(ctx context.Context, id uuid.UUID, at time.Time) error
	List(ctx context.Context, limit, offset int) ([]*Medication, int, error)
	ListActive(ctx context.Context) ([]*Medication, error)
}
