package kernel

import "math"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Normalize replaces non-positive values with the defaults
func (p PaginationOptions) Normalize() PaginationOptions {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// Offset is the index of the first item of the page, saturating at
// math.MaxInt instead of overflowing
func (p PaginationOptions) Offset() int {
	if p.Page < 1 || p.PageSize < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// Bounds returns the [start, end) window of the page inside a collection of
// total items; start == end when the page lies past the end
func (p PaginationOptions) Bounds(total int) (start, end int) {
	start = p.Offset()
	if start >= total {
		return total, total
	}
	return start, start + min(p.PageSize, total-start)
}

type Page struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}

// TotalPages is ceil(total/size), zero when size is not positive
func TotalPages(total, size int) int {
	if size <= 0 {
		return 0
	}
	if total <= 0 {
		return 0
	}
	return (total-1)/size + 1
}

func NewPaginated[T any](items []T, page, pageSize, total int) Paginated[T] {
	if items == nil {
		items = []T{}
	}
	return Paginated[T]{
		Items: items,
		Page: Page{
			Number: page,
			Size:   pageSize,
			Total:  total,
			Pages:  TotalPages(total, pageSize),
		},
		Empty: len(items) == 0,
	}
}

// PaginateSlice cuts the requested page out of an in-memory collection
func PaginateSlice[T any](all []T, opts PaginationOptions) Paginated[T] {
	opts = opts.Normalize()
	total := len(all)

	start, end := opts.Bounds(total)
	page := make([]T, end-start)
	copy(page, all[start:end])
	return NewPaginated(page, opts.Page, opts.PageSize, total)
}
