package store

// Pagination bounds for list endpoints.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListParams carries the common list query inputs: 1-based page, page size
// and an optional substring search.
type ListParams struct {
	Page     int
	PageSize int
	Query    string
}

// Normalize clamps the page and page size into their allowed ranges.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
}

// Offset returns the row offset for the current page.
func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page wraps one page of results with the total row count.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}
