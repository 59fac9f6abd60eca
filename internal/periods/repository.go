package periods

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muniworks/overtime/internal/platform/db"
	"github.com/muniworks/overtime/internal/platform/httpx"
)

// Repository persists payroll periods. Mutations that touch the active flag
// run inside a transaction so the single-active invariant holds under
// concurrent activations.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	List(ctx context.Context) ([]Period, error)
	Get(ctx context.Context, id int64) (Period, error)
	CurrentActive(ctx context.Context) (*Period, error)
	Delete(ctx context.Context, id int64) error
}

// TxRepository exposes the transactional slice of period persistence.
type TxRepository interface {
	GetForUpdate(ctx context.Context, id int64) (Period, error)
	Insert(ctx context.Context, in CreatePeriodInput) (Period, error)
	UpdateFields(ctx context.Context, id int64, in CreatePeriodInput) error
	ClearActive(ctx context.Context, exceptID int64) error
	SetActive(ctx context.Context, id int64, active bool) error
	SetClosed(ctx context.Context, id int64, closed bool) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a postgres-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const periodColumns = `id, name, start_date, end_date, active, closed, created_at, updated_at`

func scanPeriod(row pgx.Row) (Period, error) {
	var p Period
	err := row.Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.Active, &p.Closed, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Period{}, httpx.ErrNotFound
	}
	return p, err
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

func (r *repository) List(ctx context.Context) ([]Period, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+periodColumns+` FROM periods ORDER BY start_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Period
	for rows.Next() {
		var p Period
		if err := rows.Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.Active, &p.Closed, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Period, error) {
	return scanPeriod(r.pool.QueryRow(ctx, `SELECT `+periodColumns+` FROM periods WHERE id = $1`, id))
}

// CurrentActive returns the period flagged active, or nil when none is.
func (r *repository) CurrentActive(ctx context.Context) (*Period, error) {
	p, err := scanPeriod(r.pool.QueryRow(ctx, `SELECT `+periodColumns+` FROM periods WHERE active LIMIT 1`))
	if errors.Is(err, httpx.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM periods WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) GetForUpdate(ctx context.Context, id int64) (Period, error) {
	return scanPeriod(r.tx.QueryRow(ctx, `SELECT `+periodColumns+` FROM periods WHERE id = $1 FOR UPDATE`, id))
}

func (r *txRepository) Insert(ctx context.Context, in CreatePeriodInput) (Period, error) {
	const query = `INSERT INTO periods (name, start_date, end_date, active, closed)
VALUES ($1, $2, $3, $4, false)
RETURNING ` + periodColumns
	return scanPeriod(r.tx.QueryRow(ctx, query, in.Name, in.StartDate, in.EndDate, in.Active))
}

func (r *txRepository) UpdateFields(ctx context.Context, id int64, in CreatePeriodInput) error {
	const query = `UPDATE periods SET name = $1, start_date = $2, end_date = $3, updated_at = now() WHERE id = $4`
	tag, err := r.tx.Exec(ctx, query, in.Name, in.StartDate, in.EndDate, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *txRepository) ClearActive(ctx context.Context, exceptID int64) error {
	_, err := r.tx.Exec(ctx, `UPDATE periods SET active = false, updated_at = now() WHERE active AND id <> $1`, exceptID)
	return err
}

func (r *txRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.tx.Exec(ctx, `UPDATE periods SET active = $1, updated_at = now() WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *txRepository) SetClosed(ctx context.Context, id int64, closed bool) error {
	tag, err := r.tx.Exec(ctx, `UPDATE periods SET closed = $1, updated_at = now() WHERE id = $2`, closed, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
