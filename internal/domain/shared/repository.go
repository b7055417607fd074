package shared

// Filter carries common list query options
type Filter struct {
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	OrderBy  string         `json:"order_by"`
	OrderDir string         `json:"order_dir"`
	Search   string         `json:"search"`
	Filters  map[string]any `json:"filters"`
}

// NewFilter creates a filter with sane defaults
func NewFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderDir: "desc",
		Filters:  make(map[string]any),
	}
}

// Offset returns the row offset for the current page
func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the page size bounded to a sane range
func (f Filter) Limit() int {
	if f.PageSize < 1 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
