package alert

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartlog/heartlog/internal/domain/rules"
)

type ledgerKey struct {
	kind rules.AlertKind
	day  time.Time
}

type mockAlertRepo struct {
	entries   map[uuid.UUID]*Entry
	byKindDay map[ledgerKey]uuid.UUID
	dismissal *BannerDismissal
}

func newMockAlertRepo() *mockAlertRepo {
	return &mockAlertRepo{
		entries:   make(map[uuid.UUID]*Entry),
		byKindDay: make(map[ledgerKey]uuid.UUID),
	}
}

func (m *mockAlertRepo) Record(_ context.Context, e *Entry) (bool, error) {
	key := ledgerKey{kind: e.Kind, day: e.Day}
	if _, exists := m.byKindDay[key]; exists {
		return false, nil
	}
	e.ID = uuid.New()
	e.CreatedAt = time.Now().UTC()
	cp := *e
	m.entries[e.ID] = &cp
	m.byKindDay[key] = e.ID
	return true, nil
}

func (m *mockAlertRepo) GetByID(_ context.Context, id uuid.UUID) (*Entry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, context.Canceled
	}
	return e, nil
}

func (m *mockAlertRepo) Acknowledge(_ context.Context, id uuid.UUID, at time.Time) error {
	e, ok := m.entries[id]
	if !ok || e.Acknowledged {
		return nil
	}
	e.Acknowledged = true
	e.AcknowledgedAt = &at
	return nil
}

func (m *mockAlertRepo) List(_ context.Context, _, _ int) ([]*Entry, int, error) {
	var out []*Entry
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out, len(out), nil
}

func (m *mockAlertRepo) ListUnacknowledged(_ context.Context) ([]*Entry, error) {
	var out []*Entry
	for _, e := range m.entries {
		if !e.Acknowledged {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockAlertRepo) DismissConflictBanner(_ context.Context, until time.Time) error {
	m.dismissal = &BannerDismissal{Until: until}
	return nil
}

func (m *mockAlertRepo) ConflictBannerDismissal(_ context.Context) (*BannerDismissal, error) {
	return m.dismissal, nil
}

func finding(kind rules.AlertKind, at time.Time) rules.Finding {
	return rules.Finding{Kind: kind, Message: "check in with your care team", GeneratedAt: at}
}

func TestRecordFirstWins(t *testing.T) {
	repo := newMockAlertRepo()
	svc := NewService(repo)
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	if err := svc.Record(ctx, []rules.Finding{finding(rules.AlertWeightGain, at)}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	// Same kind, same day, later clock: dropped.
	if err := svc.Record(ctx, []rules.Finding{finding(rules.AlertWeightGain, at.Add(4*time.Hour))}); err != nil {
		t.Fatalf("Record duplicate: %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("ledger holds %d entries, want 1", len(repo.entries))
	}
	for _, e := range repo.entries {
		if !e.GeneratedAt.Equal(at) {
			t.Errorf("generated_at = %v, want the first finding's %v", e.GeneratedAt, at)
		}
	}
}

func TestRecordSeparateDaysAndKinds(t *testing.T) {
	repo := newMockAlertRepo()
	svc := NewService(repo)
	ctx := context.Background()
	day1 := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	err := svc.Record(ctx, []rules.Finding{
		finding(rules.AlertWeightGain, day1),
		finding(rules.AlertLowSpO2, day1),
		finding(rules.AlertWeightGain, day2),
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(repo.entries) != 3 {
		t.Errorf("ledger holds %d entries, want 3", len(repo.entries))
	}
}

func TestRecordRejectsUnknownKind(t *testing.T) {
	svc := NewService(newMockAlertRepo())
	f := finding(rules.AlertKind("mystery"), time.Now().UTC())
	if err := svc.Record(context.Background(), []rules.Finding{f}); err == nil {
		t.Error("unknown kind should be rejected")
	}
}

func TestAcknowledgeMonotonic(t *testing.T) {
	repo := newMockAlertRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.Record(ctx, []rules.Finding{finding(rules.AlertHeartRate, time.Now().UTC())}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	var id uuid.UUID
	for k := range repo.entries {
		id = k
	}

	if err := svc.Acknowledge(ctx, id); err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	first := *repo.entries[id].AcknowledgedAt

	time.Sleep(5 * time.Millisecond)
	if err := svc.Acknowledge(ctx, id); err != nil {
		t.Fatalf("second Acknowledge: %v", err)
	}
	if !repo.entries[id].AcknowledgedAt.Equal(first) {
		t.Error("second acknowledge changed the timestamp")
	}

	unack, err := svc.ListUnacknowledged(ctx)
	if err != nil {
		t.Fatalf("ListUnacknowledged: %v", err)
	}
	if len(unack) != 0 {
		t.Errorf("expected empty unacknowledged list, got %d", len(unack))
	}
}

func TestDismissConflictBanner(t *testing.T) {
	svc := NewService(newMockAlertRepo())
	ctx := context.Background()

	d, err := svc.ConflictBannerDismissal(ctx)
	if err != nil {
		t.Fatalf("ConflictBannerDismissal: %v", err)
	}
	if d != nil {
		t.Fatalf("expected no dismissal yet, got %+v", d)
	}

	until := time.Now().UTC().Add(48 * time.Hour)
	if err := svc.DismissConflictBanner(ctx, until); err != nil {
		t.Fatalf("DismissConflictBanner: %v", err)
	}
	d, err = svc.ConflictBannerDismissal(ctx)
	if err != nil {
		t.Fatalf("ConflictBannerDismissal: %v", err)
	}
	if d == nil || !d.Until.Equal(until) {
		t.Errorf("dismissal should carry the requested end, got %+v", d)
	}

	// Zero value snoozes for a day.
	if err := svc.DismissConflictBanner(ctx, time.Time{}); err != nil {
		t.Fatalf("DismissConflictBanner with zero until: %v", err)
	}
	d, _ = svc.ConflictBannerDismissal(ctx)
	if d == nil || !d.Until.After(time.Now().UTC()) {
		t.Error("default dismissal should end in the future")
	}

	// A dismissal ending in the past is rejected.
	if err := svc.DismissConflictBanner(ctx, time.Now().UTC().Add(-time.Hour)); err == nil {
		t.Error("past until should be rejected")
	}
}
