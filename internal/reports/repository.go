package reports

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/muniworks/overtime/internal/platform/httpx"
)

// PeriodInfo is the period slice the aggregator needs.
type PeriodInfo struct {
	ID     int64
	Name   string
	Closed bool
}

// EntryLine is one hour entry joined with the names the report resolves
// departments from.
type EntryLine struct {
	EmployeeID        int64
	EmployeeName      string
	BadgeID           string
	HomeDepartment    *string
	ChargedDepartment *string
	Hours             decimal.Decimal
}

// Repository loads the read model for liquidation notes.
type Repository interface {
	GetPeriod(ctx context.Context, id int64) (PeriodInfo, error)
	ListEntries(ctx context.Context, periodID int64) ([]EntryLine, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a postgres-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) GetPeriod(ctx context.Context, id int64) (PeriodInfo, error) {
	var info PeriodInfo
	err := r.pool.QueryRow(ctx, `SELECT id, name, closed FROM periods WHERE id = $1`, id).
		Scan(&info.ID, &info.Name, &info.Closed)
	if errors.Is(err, pgx.ErrNoRows) {
		return PeriodInfo{}, httpx.ErrNotFound
	}
	return info, err
}

func (r *repository) ListEntries(ctx context.Context, periodID int64) ([]EntryLine, error) {
	const query = `SELECT h.employee_id, e.full_name, e.badge_id, hd.name, cd.name, h.hours
FROM hour_entries h
JOIN employees e ON e.id = h.employee_id
LEFT JOIN departments hd ON hd.id = e.department_id
LEFT JOIN departments cd ON cd.id = h.charged_department_id
WHERE h.period_id = $1
ORDER BY h.id`
	rows, err := r.pool.Query(ctx, query, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EntryLine
	for rows.Next() {
		var line EntryLine
		if err := rows.Scan(
			&line.EmployeeID, &line.EmployeeName, &line.BadgeID,
			&line.HomeDepartment, &line.ChargedDepartment, &line.Hours,
		); err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, rows.Err()
}
