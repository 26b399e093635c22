package alert

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type alertRepoPG struct{ pool *pgxpool.Pool }

func NewAlertRepoPG(pool *pgxpool.Pool) AlertRepository {
	return &alertRepoPG{pool: pool}
}

const alertCols = `id, kind, message, evidence, day, generated_at, acknowledged, acknowledged_at, created_at`

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.Kind, &e.Message, &e.Evidence, &e.Day,
		&e.GeneratedAt, &e.Acknowledged, &e.AcknowledgedAt, &e.CreatedAt)
	return &e, err
}

func (r *alertRepoPG) Record(ctx context.Context, e *Entry) (bool, error) {
	e.ID = uuid.New()
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO alert_entry (id, kind, message, evidence, day, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (kind, day) DO NOTHING`,
		e.ID, e.Kind, e.Message, e.Evidence, e.Day, e.GeneratedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *alertRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return scanEntry(r.pool.QueryRow(ctx,
		`SELECT `+alertCols+` FROM alert_entry WHERE id = $1`, id))
}

func (r *alertRepoPG) Acknowledge(ctx context.Context, id uuid.UUID, at time.Time) error {
	// The WHERE clause makes acknowledgement monotonic: a second call is a
	// no-op and the original timestamp survives.
	_, err := r.pool.Exec(ctx, `
		UPDATE alert_entry SET acknowledged=true, acknowledged_at=$2
		WHERE id = $1 AND NOT acknowledged`, id, at)
	return err
}

func (r *alertRepoPG) List(ctx context.Context, limit, offset int) ([]*Entry, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM alert_entry`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+alertCols+` FROM alert_entry ORDER BY generated_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}

func (r *alertRepoPG) ListUnacknowledged(ctx context.Context) ([]*Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+alertCols+` FROM alert_entry WHERE NOT acknowledged ORDER BY generated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *alertRepoPG) DismissConflictBanner(ctx context.Context, until time.Time) error {
	// Singleton row keyed by id=true.
	_, err := r.pool.Exec(ctx, `
		INSERT INTO conflict_banner_dismissal (id, dismissed_until)
		VALUES (true, $1)
		ON CONFLICT (id) DO UPDATE SET dismissed_until = EXCLUDED.dismissed_until`, until)
	return err
}

func (r *alertRepoPG) ConflictBannerDismissal(ctx context.Context) (*BannerDismissal, error) {
	var d BannerDismissal
	err := r.pool.QueryRow(ctx,
		`SELECT dismissed_until FROM conflict_banner_dismissal WHERE id = true`).Scan(&d.Until)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
