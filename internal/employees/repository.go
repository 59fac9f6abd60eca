package employees

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	orgshared "github.com/muniworks/overtime/internal/org/shared"
	"github.com/muniworks/overtime/internal/platform/httpx"
	"github.com/muniworks/overtime/internal/shared"
)

type Repository interface {
	List(ctx context.Context, scope shared.Scope, filters orgshared.ListFilters) ([]Employee, int, error)
	Get(ctx context.Context, scope shared.Scope, id int64) (Employee, error)
	Create(ctx context.Context, emp Employee) (Employee, error)
	Update(ctx context.Context, id int64, emp Employee) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const employeeSelect = `SELECT e.id, e.full_name, e.badge_id, e.department_id, d.name, e.hire_date, e.created_at, e.updated_at
FROM employees e LEFT JOIN departments d ON d.id = e.department_id`

func (r *repository) List(ctx context.Context, scope shared.Scope, filters orgshared.ListFilters) ([]Employee, int, error) {
	base := ` FROM employees e LEFT JOIN departments d ON d.id = e.department_id WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if !scope.Unrestricted() {
		argCount++
		base += ` AND d.secretariat_id = $` + strconv.Itoa(argCount)
		args = append(args, *scope.SecretariatID)
	}
	if filters.Search != "" {
		argCount++
		base += ` AND (e.full_name ILIKE $` + strconv.Itoa(argCount) + ` OR e.badge_id ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+base, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT e.id, e.full_name, e.badge_id, e.department_id, d.name, e.hire_date, e.created_at, e.updated_at` +
		base + ` ORDER BY e.full_name ASC`
	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)
		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		args = append(args, filters.Offset())
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var emps []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.FullName, &e.BadgeID, &e.DepartmentID, &e.DepartmentName, &e.HireDate, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		emps = append(emps, e)
	}
	return emps, total, rows.Err()
}

// Get applies the same secretariat predicate as List, so a scoped caller
// cannot read foreign employees by probing ids.
func (r *repository) Get(ctx context.Context, scope shared.Scope, id int64) (Employee, error) {
	query := employeeSelect + ` WHERE e.id = $1`
	args := []interface{}{id}
	if !scope.Unrestricted() {
		query += ` AND d.secretariat_id = $2`
		args = append(args, *scope.SecretariatID)
	}
	var e Employee
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&e.ID, &e.FullName, &e.BadgeID, &e.DepartmentID, &e.DepartmentName, &e.HireDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, httpx.ErrNotFound
	}
	return e, err
}

// Create inserts the employee. The hire date defaults to the current date in
// the schema and is immutable afterwards.
func (r *repository) Create(ctx context.Context, emp Employee) (Employee, error) {
	const query = `INSERT INTO employees (full_name, badge_id, department_id)
VALUES ($1, $2, $3) RETURNING id, hire_date, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, emp.FullName, emp.BadgeID, emp.DepartmentID).Scan(
		&emp.ID, &emp.HireDate, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, mapPgError(err)
}

// Update never touches hire_date.
func (r *repository) Update(ctx context.Context, id int64, emp Employee) error {
	const query = `UPDATE employees SET full_name = $1, badge_id = $2, department_id = $3, updated_at = now() WHERE id = $4`
	tag, err := r.db.Exec(ctx, query, emp.FullName, emp.BadgeID, emp.DepartmentID, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return httpx.ErrDuplicate
		case "23503":
			return httpx.ErrValidation
		}
	}
	return err
}
