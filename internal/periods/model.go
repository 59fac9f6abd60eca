package periods

import (
	"fmt"
	"time"

	"github.com/muniworks/overtime/internal/platform/httpx"
)

// Period is a payroll cycle. At most one period is active at any time, and a
// closed period locks every hour entry referencing it.
type Period struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Active    bool      `json:"active"`
	Closed    bool      `json:"closed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePeriodInput carries fields for creating a period.
type CreatePeriodInput struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Active    bool
}

// Validate checks structural constraints before persisting.
func (in CreatePeriodInput) Validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: period name is required", httpx.ErrValidation)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return fmt.Errorf("%w: period start and end dates are required", httpx.ErrValidation)
	}
	if in.EndDate.Before(in.StartDate) {
		return fmt.Errorf("%w: period end date precedes start date", httpx.ErrValidation)
	}
	return nil
}
