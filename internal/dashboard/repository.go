package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository loads the aggregate series behind the dashboard charts.
type Repository interface {
	PeriodTotals(ctx context.Context) ([]Point, error)
	ActiveSecretariatTotals(ctx context.Context) ([]SecretariatTotal, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a postgres-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// PeriodTotals sums hours per period. Periods without entries are skipped by
// the inner join.
func (r *repository) PeriodTotals(ctx context.Context) ([]Point, error) {
	const query = `SELECT p.name, SUM(h.hours)
FROM periods p
JOIN hour_entries h ON h.period_id = p.id
GROUP BY p.id, p.name, p.start_date
ORDER BY p.start_date`
	return r.collect(ctx, query)
}

// ActiveSecretariatTotals sums the active period's hours by the secretariat
// owning each entry's charged department. Unassigned departments come back
// with a nil name; the service decides what to do with them.
func (r *repository) ActiveSecretariatTotals(ctx context.Context) ([]SecretariatTotal, error) {
	const query = `SELECT s.name, SUM(h.hours)
FROM hour_entries h
JOIN periods p ON p.id = h.period_id AND p.active
JOIN departments d ON d.id = h.charged_department_id
LEFT JOIN secretariats s ON s.id = d.secretariat_id
GROUP BY s.name
ORDER BY s.name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SecretariatTotal
	for rows.Next() {
		var t SecretariatTotal
		if err := rows.Scan(&t.Name, &t.Hours); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repository) collect(ctx context.Context, query string) ([]Point, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Point
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.Label, &p.Hours); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
