package store

import "math"

// DefaultLimit is the page size used when a request carries none.
const DefaultLimit = 10

// PageRequest selects one page of a listing. Page is 1-based.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize returns req with page >= 1 and limit defaulted to fallback.
func (r PageRequest) Normalize(fallback int) PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = fallback
	}
	return r
}

// Offset is the number of rows before the page. It saturates at math.MaxInt
// instead of wrapping for pages far past any table.
func (r PageRequest) Offset() int {
	if r.Page <= 1 || r.Limit <= 0 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.Limit {
		return math.MaxInt
	}
	return (r.Page - 1) * r.Limit
}

// Page is one page of a listing plus enough metadata to render pagination links.
type Page[E any] struct {
	Items    []E   `json:"items" msgpack:"items"`
	Total    int64 `json:"total" msgpack:"total"`
	Page     int   `json:"page" msgpack:"page"`
	Limit    int   `json:"limit" msgpack:"limit"`
	LastPage int   `json:"last_page" msgpack:"last_page"`
}

// NewPage assembles a Page for req.
func NewPage[E any](items []E, total int64, req PageRequest) Page[E] {
	last := 1
	if req.Limit > 0 && total > 0 {
		last = int((total + int64(req.Limit) - 1) / int64(req.Limit))
	}
	return Page[E]{Items: items, Total: total, Page: req.Page, Limit: req.Limit, LastPage: last}
}

// IsEmpty reports whether the page holds no items.
func (p Page[E]) IsEmpty() bool {
	return len(p.Items) == 0
}

// MapPage converts the items of p with fn, keeping the metadata.
func MapPage[E, T any](p Page[E], fn func(E) T) Page[T] {
	items := make([]T, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, fn(it))
	}
	return Page[T]{Items: items, Total: p.Total, Page: p.Page, Limit: p.Limit, LastPage: p.LastPage}
}
