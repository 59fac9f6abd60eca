package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muniworks/overtime/internal/shared"
)

// Repository loads API client credentials.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Client, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a postgres-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Client, error) {
	const query = `SELECT id, name, token_hash, is_admin, secretariat_id, is_active, created_at
FROM api_clients WHERE id = $1`
	var c Client
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.TokenHash, &c.IsAdmin, &c.SecretariatID, &c.IsActive, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
