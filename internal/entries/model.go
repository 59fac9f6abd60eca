package entries

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one recorded overtime event. Period and charged department are
// optional on input; missing values are defaulted from the active period and
// the employee's home department before validation runs.
type Entry struct {
	ID                    int64           `json:"id"`
	EmployeeID            int64           `json:"employee_id"`
	EmployeeName          string          `json:"employee_name,omitempty"`
	PeriodID              *int64          `json:"period_id,omitempty"`
	PeriodName            *string         `json:"period_name,omitempty"`
	ChargedDepartmentID   *int64          `json:"charged_department_id,omitempty"`
	ChargedDepartmentName *string         `json:"charged_department_name,omitempty"`
	WorkDate              *time.Time      `json:"work_date,omitempty"`
	Reason                *string         `json:"reason,omitempty"`
	Hours                 decimal.Decimal `json:"hours"`
	ExceededConfirmed     bool            `json:"exceeded_confirmed"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// EmployeeRef is the slice of an employee the write path needs.
type EmployeeRef struct {
	ID               int64
	FullName         string
	HomeDepartmentID *int64
}

// PeriodRef is the slice of a period the write path needs.
type PeriodRef struct {
	ID     int64
	Name   string
	Active bool
	Closed bool
}

// ListFilters narrows entry listings.
type ListFilters struct {
	Page       int
	Limit      int
	PeriodID   *int64
	EmployeeID *int64
}

// Offset computes the row offset for the current page.
func (f ListFilters) Offset() int {
	offset := (f.Page - 1) * f.Limit
	if offset < 0 {
		return 0
	}
	return offset
}
