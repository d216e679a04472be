package query

// Pagination defaults. MaxLimit caps a single page; the original UI
// never asks for more than 50 rows.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

// NewPage clamps page to >=1 and limit to [1, MaxLimit], applying
// DefaultLimit when limit is unset.
func NewPage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Page: page, Limit: limit}
}

// From is the zero-based index of the first row on the page.
func (p Page) From() int { return (p.Page - 1) * p.Limit }

// To is the zero-based index of the last row on the page (inclusive).
func (p Page) To() int { return p.From() + p.Limit - 1 }

// Offset is the SQL OFFSET for the page, identical to From.
func (p Page) Offset() int { return p.From() }

// TotalPages is ceil(total/limit); 0 when there are no rows.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
