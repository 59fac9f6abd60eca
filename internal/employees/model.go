package employees

import "time"

// Employee is a municipal worker overtime can be recorded for. BadgeID is the
// external payroll identifier. HireDate is set at creation and never updated.
type Employee struct {
	ID             int64     `json:"id"`
	FullName       string    `json:"full_name"`
	BadgeID        string    `json:"badge_id"`
	DepartmentID   *int64    `json:"department_id,omitempty"`
	DepartmentName *string   `json:"department_name,omitempty"`
	HireDate       time.Time `json:"hire_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
