package dashboard

import "github.com/shopspring/decimal"

// NoDataLabel is emitted instead of an empty pie series so chart callers
// always have something to draw.
const NoDataLabel = "Sin datos"

// Point is one chart datum, a label with its hour total.
type Point struct {
	Label string          `json:"label"`
	Hours decimal.Decimal `json:"total_hours"`
}

// SecretariatTotal is one secretariat's hour total for the active period.
// Name is nil when the charged department has no secretariat assigned.
type SecretariatTotal struct {
	Name  *string
	Hours decimal.Decimal
}

// Series carries both dashboard datasets.
type Series struct {
	// Bars holds per-period hour totals ordered by period start date.
	Bars []Point `json:"bars"`
	// Pie holds the active period's totals grouped by secretariat.
	Pie []Point `json:"pie"`
}
