package shared

// ListFilters collects common list query parameters for org reference data.
type ListFilters struct {
	Page          int
	Limit         int
	Search        string
	SecretariatID *int64
	SortBy        string
	SortDir       string
}

// Offset computes the row offset for the current page.
func (f ListFilters) Offset() int {
	offset := (f.Page - 1) * f.Limit
	if offset < 0 {
		return 0
	}
	return offset
}
