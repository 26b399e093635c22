package medication

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type medicationRepoPG struct{ pool *pgxpool.Pool }

func NewMedicationRepoPG(pool *pgxpool.Pool) MedicationRepository {
	return &medicationRepoPG{pool: pool}
}

const medCols = `id, name, category, diuretic, active, deactivated_at, created_at, updated_at`

func scanMedication(row pgx.Row) (*Medication, error) {
	var m Medication
	err := row.Scan(&m.ID, &m.Name, &m.Category, &m.Diuretic, &m.Active,
		&m.DeactivatedAt, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *medicationRepoPG) Create(ctx context.Context, m *Medication) error {
	m.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO medication (id, name, category, diuretic, active)
		VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.Name, m.Category, m.Diuretic, m.Active)
	return err
}

func (r *medicationRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return scanMedication(r.pool.QueryRow(ctx,
		`SELECT `+medCols+` FROM medication WHERE id = $1`, id))
}

func (r *medicationRepoPG) Update(ctx context.Context, m *Medication) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE medication SET name=$2, category=$3, diuretic=$4, active=$5,
			deactivated_at=$6, updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.Name, m.Category, m.Diuretic, m.Active, m.DeactivatedAt)
	return err
}

func (r *medicationRepoPG) Deactivate(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE medication SET active=false, deactivated_at=$2, updated_at=NOW()
		WHERE id = $1 AND active`, id, at)
	return err
}

func (r *medicationRepoPG) List(ctx context.Context, limit, offset int) ([]*Medication, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM medication`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+medCols+` FROM medication ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Medication
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

func (r *medicationRepoPG) ListActive(ctx context.Context) ([]*Medication, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+medCols+` FROM medication WHERE active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Medication
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
