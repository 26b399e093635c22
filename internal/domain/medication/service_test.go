package medication

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockMedicationRepo struct {
	meds map[uuid.UUID]*Medication
}

func newMockMedicationRepo() *mockMedicationRepo {
	return &mockMedicationRepo{meds: make(map[uuid.UUID]*Medication)}
}

func (m *mockMedicationRepo) Create(_ context.Context, med *Medication) error {
	med.ID = uuid.New()
	med.CreatedAt = time.Now().UTC()
	cp := *med
	m.meds[med.ID] = &cp
	return nil
}

func (m *mockMedicationRepo) GetByID(_ context.Context, id uuid.UUID) (*Medication, error) {
	med, ok := m.meds[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return med, nil
}

func (m *mockMedicationRepo) Update(_ context.Context, med *Medication) error {
	cp := *med
	m.meds[med.ID] = &cp
	return nil
}

func (m *mockMedicationRepo) Deactivate(_ context.Context, id uuid.UUID, at time.Time) error {
	med, ok := m.meds[id]
	if !ok {
		return errors.New("not found")
	}
	med.Active = false
	med.DeactivatedAt = &at
	return nil
}

func (m *mockMedicationRepo) List(_ context.Context, _, _ int) ([]*Medication, int, error) {
	var out []*Medication
	for _, med := range m.meds {
		out = append(out, med)
	}
	return out, len(out), nil
}

func (m *mockMedicationRepo) ListActive(_ context.Context) ([]*Medication, error) {
	var out []*Medication
	for _, med := range m.meds {
		if med.Active {
			out = append(out, med)
		}
	}
	return out, nil
}

func TestServiceCreateAppliesPreset(t *testing.T) {
	svc := NewService(newMockMedicationRepo())

	m := &Medication{Name: "Lisinopril"}
	if _, err := svc.Create(context.Background(), m, false); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.Category == nil || *m.Category != CategoryACEInhibitor {
		t.Errorf("category = %v, want %s from preset", m.Category, CategoryACEInhibitor)
	}
	if !m.Active {
		t.Error("new medication should be active")
	}
}

func TestServiceCreatePresetDiuretic(t *testing.T) {
	svc := NewService(newMockMedicationRepo())

	m := &Medication{Name: "furosemide"}
	if _, err := svc.Create(context.Background(), m, false); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !m.Diuretic {
		t.Error("furosemide preset should flag diuretic")
	}
	if m.Category != nil {
		t.Errorf("category = %v, want uncategorized", *m.Category)
	}
}

func TestServiceCreateUnknownNameUncategorized(t *testing.T) {
	svc := NewService(newMockMedicationRepo())

	m := &Medication{Name: "Fish Oil"}
	conflicts, err := svc.Create(context.Background(), m, false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.Category != nil {
		t.Errorf("category = %v, want nil", *m.Category)
	}
	if len(conflicts) != 0 {
		t.Errorf("uncategorized medication produced conflicts: %+v", conflicts)
	}
}

func TestServiceCreateBlocksOnConflict(t *testing.T) {
	repo := newMockMedicationRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &Medication{Name: "Lisinopril"}, false); err != nil {
		t.Fatalf("Create lisinopril: %v", err)
	}

	m := &Medication{Name: "Losartan"}
	conflicts, err := svc.Create(ctx, m, false)
	if !errors.Is(err, ErrConflictsDetected) {
		t.Fatalf("err = %v, want ErrConflictsDetected", err)
	}
	if len(conflicts) != 1 || conflicts[0].Type != ConflictCrossClass {
		t.Fatalf("conflicts = %+v", conflicts)
	}
	if len(repo.meds) != 1 {
		t.Errorf("conflicting medication was saved; repo holds %d", len(repo.meds))
	}
}

func TestServiceCreateForceOverridesConflict(t *testing.T) {
	repo := newMockMedicationRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &Medication{Name: "Lisinopril"}, false); err != nil {
		t.Fatalf("Create lisinopril: %v", err)
	}

	conflicts, err := svc.Create(ctx, &Medication{Name: "Losartan"}, true)
	if err != nil {
		t.Fatalf("forced Create: %v", err)
	}
	if len(conflicts) != 1 {
		t.Errorf("forced create should still report conflicts, got %+v", conflicts)
	}
	if len(repo.meds) != 2 {
		t.Errorf("repo holds %d medications, want 2", len(repo.meds))
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc := NewService(newMockMedicationRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, &Medication{}, false); err == nil {
		t.Error("empty name should be rejected")
	}

	bad := TherapeuticCategory("antihistamine")
	if _, err := svc.Create(ctx, &Medication{Name: "Cetirizine", Category: &bad}, false); err == nil {
		t.Error("unknown category should be rejected")
	}
}

func TestServiceDeactivateExcludesFromConflicts(t *testing.T) {
	repo := newMockMedicationRepo()
	svc := NewService(repo)
	ctx := context.Background()

	lis := &Medication{Name: "Lisinopril"}
	if _, err := svc.Create(ctx, lis, false); err != nil {
		t.Fatalf("Create lisinopril: %v", err)
	}
	if _, err := svc.Create(ctx, &Medication{Name: "Losartan"}, true); err != nil {
		t.Fatalf("Create losartan: %v", err)
	}

	before, err := svc.FindAllConflicts(ctx)
	if err != nil {
		t.Fatalf("FindAllConflicts: %v", err)
	}
	if len(before) != 1 {
		t.Fatalf("expected 1 conflict before deactivation, got %+v", before)
	}

	if err := svc.Deactivate(ctx, lis.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	after, err := svc.FindAllConflicts(ctx)
	if err != nil {
		t.Fatalf("FindAllConflicts: %v", err)
	}
	if len(after) != 0 {
		t.Errorf("expected no conflicts after deactivation, got %+v", after)
	}

	got, err := svc.Get(ctx, lis.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Active || got.DeactivatedAt == nil {
		t.Error("deactivated medication should keep its row with a timestamp")
	}
}
