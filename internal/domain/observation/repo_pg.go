package observation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type observationRepoPG struct{ pool *pgxpool.Pool }

func NewObservationRepoPG(pool *pgxpool.Pool) ObservationRepository {
	return &observationRepoPG{pool: pool}
}

const vitalCols = `id, kind, value, taken, day, created_at, updated_at`

func scanVital(row pgx.Row) (*VitalReading, error) {
	var r VitalReading
	err := row.Scan(&r.ID, &r.Kind, &r.Value, &r.Taken, &r.Day, &r.CreatedAt, &r.UpdatedAt)
	return &r, err
}

func (repo *observationRepoPG) UpsertVital(ctx context.Context, r *VitalReading) error {
	r.ID = uuid.New()
	// Last write on a day wins; the row keeps its original id on replace.
	_, err := repo.pool.Exec(ctx, `
		INSERT INTO vital_reading (id, kind, value, taken, day)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (kind, day) DO UPDATE
		SET value = EXCLUDED.value, taken = EXCLUDED.taken, updated_at = NOW()`,
		r.ID, r.Kind, r.Value, r.Taken, r.Day)
	return err
}

func (repo *observationRepoPG) VitalSeries(ctx context.Context, kind VitalKind, from, to time.Time) ([]VitalReading, error) {
	rows, err := repo.pool.Query(ctx, `
		SELECT `+vitalCols+` FROM vital_reading
		WHERE kind = $1 AND day BETWEEN $2 AND $3
		ORDER BY day`, kind, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []VitalReading
	for rows.Next() {
		r, err := scanVital(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}

const symptomCols = `id, day, breathlessness, orthopnea, fatigue, swelling, cough, dizziness, palpitations, appetite_loss, created_at, updated_at`

func scanSymptomEntry(row pgx.Row) (*SymptomEntry, error) {
	var e SymptomEntry
	err := row.Scan(&e.ID, &e.Day, &e.Breathlessness, &e.Orthopnea, &e.Fatigue,
		&e.Swelling, &e.Cough, &e.Dizziness, &e.Palpitations, &e.AppetiteLoss,
		&e.CreatedAt, &e.UpdatedAt)
	return &e, err
}

func (repo *observationRepoPG) UpsertSymptoms(ctx context.Context, e *SymptomEntry) error {
	e.ID = uuid.New()
	// COALESCE keeps a stored severity when the new entry does not mention
	// that symptom, so partial updates never erase earlier answers.
	_, err := repo.pool.Exec(ctx, `
		INSERT INTO symptom_entry (id, day, breathlessness, orthopnea, fatigue,
			swelling, cough, dizziness, palpitations, appetite_loss)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (day) DO UPDATE SET
			breathlessness = COALESCE(EXCLUDED.breathlessness, symptom_entry.breathlessness),
			orthopnea      = COALESCE(EXCLUDED.orthopnea, symptom_entry.orthopnea),
			fatigue        = COALESCE(EXCLUDED.fatigue, symptom_entry.fatigue),
			swelling       = COALESCE(EXCLUDED.swelling, symptom_entry.swelling),
			cough          = COALESCE(EXCLUDED.cough, symptom_entry.cough),
			dizziness      = COALESCE(EXCLUDED.dizziness, symptom_entry.dizziness),
			palpitations   = COALESCE(EXCLUDED.palpitations, symptom_entry.palpitations),
			appetite_loss  = COALESCE(EXCLUDED.appetite_loss, symptom_entry.appetite_loss),
			updated_at     = NOW()`,
		e.ID, e.Day, e.Breathlessness, e.Orthopnea, e.Fatigue,
		e.Swelling, e.Cough, e.Dizziness, e.Palpitations, e.AppetiteLoss)
	return err
}

func (repo *observationRepoPG) SymptomEntryForDay(ctx context.Context, day time.Time) (*SymptomEntry, error) {
	e, err := scanSymptomEntry(repo.pool.QueryRow(ctx,
		`SELECT `+symptomCols+` FROM symptom_entry WHERE day = $1`, day))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (repo *observationRepoPG) ListSymptomEntries(ctx context.Context, from, to time.Time) ([]SymptomEntry, error) {
	rows, err := repo.pool.Query(ctx, `
		SELECT `+symptomCols+` FROM symptom_entry
		WHERE day BETWEEN $1 AND $2
		ORDER BY day`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SymptomEntry
	for rows.Next() {
		e, err := scanSymptomEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}
