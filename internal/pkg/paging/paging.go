// Package paging normalizes offset pagination requests and wraps result pages.
package paging

import "math"

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// Limits bounds the accepted page size.
type Limits struct {
	DefaultSize int
	MaxSize     int
}

// DefaultLimits returns the catalog defaults (12 per page, at most 100).
func DefaultLimits() Limits {
	return Limits{DefaultSize: DefaultPageSize, MaxSize: MaxPageSize}
}

// Request is a normalized page request. Page is zero-based.
type Request struct {
	Page int
	Size int

	// Clamped reports whether the raw input had to be corrected. A zero
	// size is a request for the default and does not count.
	Clamped bool
}

// NewRequest clamps raw page/size values: negative pages become 0, sizes
// below 1 fall back to the default and sizes above the maximum are capped.
// Size 0 means "not given" and selects the default without marking the
// request as clamped.
func NewRequest(page, size int, limits Limits) Request {
	if limits.DefaultSize < 1 {
		limits.DefaultSize = DefaultPageSize
	}
	if limits.MaxSize < limits.DefaultSize {
		limits.MaxSize = limits.DefaultSize
	}

	req := Request{Page: page, Size: size}
	if req.Page < 0 {
		req.Page = 0
		req.Clamped = true
	}
	if req.Size < 1 {
		req.Size = limits.DefaultSize
		req.Clamped = req.Clamped || size < 0
	}
	if req.Size > limits.MaxSize {
		req.Size = limits.MaxSize
		req.Clamped = true
	}
	return req
}

// Offset returns the number of rows to skip. It saturates at math.MaxInt64
// so huge page numbers land past the end instead of wrapping negative.
func (r Request) Offset() int64 {
	if r.Page <= 0 || r.Size <= 0 {
		return 0
	}
	if int64(r.Page) > math.MaxInt64/int64(r.Size) {
		return math.MaxInt64
	}
	return int64(r.Page) * int64(r.Size)
}

// Limit returns the maximum number of rows to fetch.
func (r Request) Limit() int64 {
	return int64(r.Size)
}

// Page is one window of an ordered result set.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Last       bool  `json:"last"`
}

// NewPage wraps items fetched for req out of total matching rows.
// A page past the end is empty and reported as last.
func NewPage[T any](items []T, req Request, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if total > 0 && req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return &Page[T]{
		Items:      items,
		Page:       req.Page,
		Size:       req.Size,
		Total:      total,
		TotalPages: totalPages,
		Last:       total == 0 || req.Page >= totalPages-1,
	}
}

// Map converts the items of a page, keeping its metadata.
func Map[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, fn(item))
	}
	return &Page[U]{
		Items:      items,
		Page:       p.Page,
		Size:       p.Size,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		Last:       p.Last,
	}
}
