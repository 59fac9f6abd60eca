package entries

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/muniworks/overtime/internal/platform/httpx"
)

// ExcessThreshold is the monthly hour count above which an explicit
// confirmation is required before the entry may be saved.
var ExcessThreshold = decimal.NewFromInt(180)

// maxHours mirrors the numeric(4,1) column: three integer digits.
var maxHours = decimal.NewFromInt(1000)

// normalize fills defaulted fields in place. It must run before validate so
// a defaulted period participates in the closed check.
func normalize(entry *Entry, employee EmployeeRef, active *PeriodRef) {
	if entry.ChargedDepartmentID == nil && employee.HomeDepartmentID != nil {
		id := *employee.HomeDepartmentID
		entry.ChargedDepartmentID = &id
	}
	if entry.PeriodID == nil && active != nil {
		id := active.ID
		entry.PeriodID = &id
	}
}

// validate applies the write-path rules against the resolved period. A nil
// period means the entry is being saved periodless, which is allowed when no
// period is active.
func validate(entry Entry, period *PeriodRef) error {
	if err := validatePeriodOpen(period); err != nil {
		return err
	}
	if entry.Hours.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: hours must be greater than zero", httpx.ErrValidation)
	}
	if entry.Hours.GreaterThanOrEqual(maxHours) {
		return fmt.Errorf("%w: hours exceed the representable maximum", httpx.ErrValidation)
	}
	if entry.Hours.GreaterThan(ExcessThreshold) && !entry.ExceededConfirmed {
		return &httpx.FieldErrors{
			Detail: fmt.Sprintf("entries above %s hours require explicit confirmation", ExcessThreshold.String()),
			Fields: map[string]string{
				"hours":              fmt.Sprintf("%s hours exceed the %s hour threshold", entry.Hours.String(), ExcessThreshold.String()),
				"exceeded_confirmed": "tick the confirmation to save an entry above the threshold",
			},
		}
	}
	return nil
}

// validatePeriodOpen is the shared closed-period gate, also applied on delete.
func validatePeriodOpen(period *PeriodRef) error {
	if period != nil && period.Closed {
		return fmt.Errorf("%w: period %q is closed, entries can no longer change", httpx.ErrValidation, period.Name)
	}
	return nil
}
