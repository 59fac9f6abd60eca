package departments

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
	List(ctx context.Context, scope shared.Scope, filters orgshared.ListFilters) ([]Department, int, error)
	Get(ctx context.Context, scope shared.Scope, id int64) (Department, error)
	Create(ctx context.Context, dep Department) (Department, error)
	Update(ctx context.Context, id int64, dep Department) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, scope shared.Scope, filters orgshared.ListFilters) ([]Department, int, error) {
	base := ` FROM departments d LEFT JOIN secretariats s ON s.id = d.secretariat_id WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if !scope.Unrestricted() {
		argCount++
		base += ` AND d.secretariat_id = $` + strconv.Itoa(argCount)
		args = append(args, *scope.SecretariatID)
	}
	if filters.SecretariatID != nil {
		argCount++
		base += ` AND d.secretariat_id = $` + strconv.Itoa(argCount)
		args = append(args, *filters.SecretariatID)
	}
	if filters.Search != "" {
		argCount++
		base += ` AND d.name ILIKE $` + strconv.Itoa(argCount)
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+base, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT d.id, d.name, d.secretariat_id, s.name, d.created_at, d.updated_at` + base + ` ORDER BY d.name ASC`
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

	var deps []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.SecretariatID, &d.SecretariatName, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, err
		}
		deps = append(deps, d)
	}
	return deps, total, rows.Err()
}

// Get applies the same secretariat predicate as List, so a scoped caller
// cannot read foreign departments by probing ids.
func (r *repository) Get(ctx context.Context, scope shared.Scope, id int64) (Department, error) {
	query := `SELECT d.id, d.name, d.secretariat_id, s.name, d.created_at, d.updated_at
FROM departments d LEFT JOIN secretariats s ON s.id = d.secretariat_id WHERE d.id = $1`
	args := []interface{}{id}
	if !scope.Unrestricted() {
		query += ` AND d.secretariat_id = $2`
		args = append(args, *scope.SecretariatID)
	}
	var d Department
	err := r.db.QueryRow(ctx, query, args...).Scan(&d.ID, &d.Name, &d.SecretariatID, &d.SecretariatName, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Department{}, httpx.ErrNotFound
	}
	return d, err
}

func (r *repository) Create(ctx context.Context, dep Department) (Department, error) {
	const query = `INSERT INTO departments (name, secretariat_id) VALUES ($1, $2) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, dep.Name, dep.SecretariatID).Scan(&dep.ID, &dep.CreatedAt, &dep.UpdatedAt)
	return dep, mapPgError(err)
}

func (r *repository) Update(ctx context.Context, id int64, dep Department) error {
	const query = `UPDATE departments SET name = $1, secretariat_id = $2, updated_at = now() WHERE id = $3`
	tag, err := r.db.Exec(ctx, query, dep.Name, dep.SecretariatID, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// Delete removes the department; employees and entries referencing it keep
// existing with the reference nulled by the schema (ON DELETE SET NULL).
func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
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
