package secretariats

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muniworks/overtime/internal/org/shared"
	"github.com/muniworks/overtime/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Secretariat, int, error)
	Get(ctx context.Context, id int64) (Secretariat, error)
	Create(ctx context.Context, sec Secretariat) (Secretariat, error)
	Update(ctx context.Context, id int64, sec Secretariat) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Secretariat, int, error) {
	query := `SELECT id, name, created_at, updated_at FROM secretariats WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		query += ` AND name ILIKE $` + strconv.Itoa(argCount)
		args = append(args, "%"+filters.Search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM secretariats WHERE 1=1`
	countArgs := []interface{}{}
	if filters.Search != "" {
		countQuery += ` AND name ILIKE $1`
		countArgs = append(countArgs, "%"+filters.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY name ASC`
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

	var secs []Secretariat
	for rows.Next() {
		var s Secretariat
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		secs = append(secs, s)
	}
	return secs, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Secretariat, error) {
	const query = `SELECT id, name, created_at, updated_at FROM secretariats WHERE id = $1`
	var s Secretariat
	err := r.db.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Secretariat{}, httpx.ErrNotFound
	}
	return s, err
}

func (r *repository) Create(ctx context.Context, sec Secretariat) (Secretariat, error) {
	const query = `INSERT INTO secretariats (name) VALUES ($1) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, sec.Name).Scan(&sec.ID, &sec.CreatedAt, &sec.UpdatedAt)
	return sec, mapUniqueViolation(err)
}

func (r *repository) Update(ctx context.Context, id int64, sec Secretariat) error {
	const query = `UPDATE secretariats SET name = $1, updated_at = now() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, sec.Name, id)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// Delete removes the secretariat; owned departments keep existing with their
// secretariat reference nulled by the schema (ON DELETE SET NULL).
func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM secretariats WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return httpx.ErrDuplicate
	}
	return err
}
