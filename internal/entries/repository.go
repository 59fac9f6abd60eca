package entries

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muniworks/overtime/internal/platform/db"
	"github.com/muniworks/overtime/internal/platform/httpx"
	"github.com/muniworks/overtime/internal/shared"
)

// Repository persists hour entries. The write path needs period and employee
// lookups inside the same transaction as the write so a period closing
// between check and write cannot slip an edit through.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	List(ctx context.Context, scope shared.Scope, filters ListFilters) ([]Entry, int, error)
	Get(ctx context.Context, scope shared.Scope, id int64) (Entry, error)
}

// TxRepository exposes the transactional slice of entry persistence.
type TxRepository interface {
	GetEmployeeRef(ctx context.Context, id int64) (EmployeeRef, error)
	GetPeriodRef(ctx context.Context, id int64) (*PeriodRef, error)
	CurrentActivePeriod(ctx context.Context) (*PeriodRef, error)
	GetForUpdate(ctx context.Context, id int64) (Entry, error)
	Insert(ctx context.Context, entry Entry) (Entry, error)
	Update(ctx context.Context, id int64, entry Entry) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a postgres-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

const entrySelect = `SELECT h.id, h.employee_id, e.full_name, h.period_id, p.name,
h.charged_department_id, d.name, h.work_date, h.reason, h.hours, h.exceeded_confirmed, h.created_at, h.updated_at
FROM hour_entries h
JOIN employees e ON e.id = h.employee_id
LEFT JOIN periods p ON p.id = h.period_id
LEFT JOIN departments d ON d.id = h.charged_department_id`

func scanEntry(row pgx.Row) (Entry, error) {
	var entry Entry
	err := row.Scan(
		&entry.ID, &entry.EmployeeID, &entry.EmployeeName, &entry.PeriodID, &entry.PeriodName,
		&entry.ChargedDepartmentID, &entry.ChargedDepartmentName, &entry.WorkDate, &entry.Reason,
		&entry.Hours, &entry.ExceededConfirmed, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, httpx.ErrNotFound
	}
	return entry, err
}

func (r *repository) List(ctx context.Context, scope shared.Scope, filters ListFilters) ([]Entry, int, error) {
	base := ` FROM hour_entries h
JOIN employees e ON e.id = h.employee_id
LEFT JOIN periods p ON p.id = h.period_id
LEFT JOIN departments d ON d.id = h.charged_department_id
WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if !scope.Unrestricted() {
		argCount++
		base += ` AND d.secretariat_id = $` + strconv.Itoa(argCount)
		args = append(args, *scope.SecretariatID)
	}
	if filters.PeriodID != nil {
		argCount++
		base += ` AND h.period_id = $` + strconv.Itoa(argCount)
		args = append(args, *filters.PeriodID)
	}
	if filters.EmployeeID != nil {
		argCount++
		base += ` AND h.employee_id = $` + strconv.Itoa(argCount)
		args = append(args, *filters.EmployeeID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+base, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT h.id, h.employee_id, e.full_name, h.period_id, p.name,
h.charged_department_id, d.name, h.work_date, h.reason, h.hours, h.exceeded_confirmed, h.created_at, h.updated_at` +
		base + ` ORDER BY h.created_at DESC`
	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)
		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		args = append(args, filters.Offset())
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(
			&entry.ID, &entry.EmployeeID, &entry.EmployeeName, &entry.PeriodID, &entry.PeriodName,
			&entry.ChargedDepartmentID, &entry.ChargedDepartmentName, &entry.WorkDate, &entry.Reason,
			&entry.Hours, &entry.ExceededConfirmed, &entry.CreatedAt, &entry.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, entry)
	}
	return out, total, rows.Err()
}

// Get applies the same secretariat predicate as List, so a scoped caller
// cannot read foreign entries by probing ids.
func (r *repository) Get(ctx context.Context, scope shared.Scope, id int64) (Entry, error) {
	query := entrySelect + ` WHERE h.id = $1`
	args := []interface{}{id}
	if !scope.Unrestricted() {
		query += ` AND d.secretariat_id = $2`
		args = append(args, *scope.SecretariatID)
	}
	return scanEntry(r.pool.QueryRow(ctx, query, args...))
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) GetEmployeeRef(ctx context.Context, id int64) (EmployeeRef, error) {
	var ref EmployeeRef
	err := r.tx.QueryRow(ctx, `SELECT id, full_name, department_id FROM employees WHERE id = $1`, id).
		Scan(&ref.ID, &ref.FullName, &ref.HomeDepartmentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeeRef{}, httpx.ErrNotFound
	}
	return ref, err
}

// GetPeriodRef locks the period row for the duration of the transaction so a
// concurrent close waits for the write to finish.
func (r *txRepository) GetPeriodRef(ctx context.Context, id int64) (*PeriodRef, error) {
	var ref PeriodRef
	err := r.tx.QueryRow(ctx, `SELECT id, name, active, closed FROM periods WHERE id = $1 FOR SHARE`, id).
		Scan(&ref.ID, &ref.Name, &ref.Active, &ref.Closed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httpx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *txRepository) CurrentActivePeriod(ctx context.Context) (*PeriodRef, error) {
	var ref PeriodRef
	err := r.tx.QueryRow(ctx, `SELECT id, name, active, closed FROM periods WHERE active LIMIT 1 FOR SHARE`).
		Scan(&ref.ID, &ref.Name, &ref.Active, &ref.Closed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *txRepository) GetForUpdate(ctx context.Context, id int64) (Entry, error) {
	const query = `SELECT h.id, h.employee_id, e.full_name, h.period_id, p.name,
h.charged_department_id, d.name, h.work_date, h.reason, h.hours, h.exceeded_confirmed, h.created_at, h.updated_at
FROM hour_entries h
JOIN employees e ON e.id = h.employee_id
LEFT JOIN periods p ON p.id = h.period_id
LEFT JOIN departments d ON d.id = h.charged_department_id
WHERE h.id = $1 FOR UPDATE OF h`
	return scanEntry(r.tx.QueryRow(ctx, query, id))
}

func (r *txRepository) Insert(ctx context.Context, entry Entry) (Entry, error) {
	const query = `INSERT INTO hour_entries (employee_id, period_id, charged_department_id, work_date, reason, hours, exceeded_confirmed)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at, updated_at`
	err := r.tx.QueryRow(ctx, query,
		entry.EmployeeID, entry.PeriodID, entry.ChargedDepartmentID,
		entry.WorkDate, entry.Reason, entry.Hours, entry.ExceededConfirmed,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	return entry, err
}

func (r *txRepository) Update(ctx context.Context, id int64, entry Entry) error {
	const query = `UPDATE hour_entries
SET employee_id = $1, period_id = $2, charged_department_id = $3, work_date = $4, reason = $5,
    hours = $6, exceeded_confirmed = $7, updated_at = now()
WHERE id = $8`
	tag, err := r.tx.Exec(ctx, query,
		entry.EmployeeID, entry.PeriodID, entry.ChargedDepartmentID,
		entry.WorkDate, entry.Reason, entry.Hours, entry.ExceededConfirmed, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *txRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.tx.Exec(ctx, `DELETE FROM hour_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
