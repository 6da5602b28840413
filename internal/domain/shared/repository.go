package shared

import "strings"

// Page size bounds for admin lists
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Filter selects one page of an admin list
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Status   string
	Search   string
}

// DefaultFilter returns the first page, newest first
func DefaultFilter() Filter {
	return Filter{Page: 1, PageSize: DefaultPageSize, OrderBy: "created_at", OrderDir: "desc"}
}

// Offset is the number of rows before the requested page
func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit clamps the page size
func (f Filter) Limit() int {
	switch {
	case f.PageSize <= 0:
		return DefaultPageSize
	case f.PageSize > MaxPageSize:
		return MaxPageSize
	}
	return f.PageSize
}

// OrderClause builds an ORDER BY from the filter. Columns outside allowed
// fall back to fallback, and the direction defaults to DESC.
func (f Filter) OrderClause(allowed map[string]bool, fallback string) string {
	column := strings.TrimSpace(f.OrderBy)
	if !allowed[column] {
		column = fallback
	}
	dir := "DESC"
	if strings.EqualFold(strings.TrimSpace(f.OrderDir), "asc") {
		dir = "ASC"
	}
	return column + " " + dir
}

// Paginated is one page of a list with its totals
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPaginated wraps items fetched with f
func NewPaginated[T any](items []T, total int64, f Filter) Paginated[T] {
	size := f.Limit()
	page := f.Page
	if page < 1 {
		page = 1
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: int((total + int64(size) - 1) / int64(size)),
	}
}
