package paging

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRequest(t *testing.T) {
	limits := DefaultLimits()

	tests := []struct {
		name        string
		page, size  int
		wantPage    int
		wantSize    int
		wantClamped bool
	}{
		{name: "as given", page: 2, size: 20, wantPage: 2, wantSize: 20},
		{name: "negative page", page: -3, size: 10, wantPage: 0, wantSize: 10, wantClamped: true},
		{name: "zero size is a request for the default", page: 0, size: 0, wantPage: 0, wantSize: 12},
		{name: "negative size uses default", page: 0, size: -5, wantPage: 0, wantSize: 12, wantClamped: true},
		{name: "size over max is capped", page: 1, size: 1000, wantPage: 1, wantSize: 100, wantClamped: true},
		{name: "size at max", page: 0, size: 100, wantPage: 0, wantSize: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewRequest(tt.page, tt.size, limits)
			assert.Equal(t, tt.wantPage, req.Page)
			assert.Equal(t, tt.wantSize, req.Size)
			assert.Equal(t, tt.wantClamped, req.Clamped)
		})
	}
}

func TestNewRequest_CustomLimits(t *testing.T) {
	req := NewRequest(0, 0, Limits{DefaultSize: 10, MaxSize: 50})
	assert.Equal(t, 10, req.Size)

	req = NewRequest(0, 75, Limits{DefaultSize: 10, MaxSize: 50})
	assert.Equal(t, 50, req.Size)

	// Unset limits fall back to catalog defaults
	req = NewRequest(0, 0, Limits{})
	assert.Equal(t, DefaultPageSize, req.Size)
}

func TestRequest_OffsetAndLimit(t *testing.T) {
	req := NewRequest(3, 12, DefaultLimits())
	assert.Equal(t, int64(36), req.Offset())
	assert.Equal(t, int64(12), req.Limit())
}

func TestRequest_OffsetSaturates(t *testing.T) {
	req := NewRequest(math.MaxInt64/12+1, 12, DefaultLimits())
	assert.Equal(t, int64(math.MaxInt64), req.Offset())

	req = NewRequest(math.MaxInt64/100, 100, DefaultLimits())
	assert.Equal(t, int64(math.MaxInt64/100)*100, req.Offset())
	assert.Positive(t, req.Offset())

	p := NewPage([]string(nil), NewRequest(math.MaxInt64/12+1, 12, DefaultLimits()), 3)
	assert.Empty(t, p.Items)
	assert.True(t, p.Last)
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		name           string
		page, size     int
		items          []string
		total          int64
		wantTotalPages int
		wantLast       bool
	}{
		{name: "empty catalog", page: 0, size: 10, items: nil, total: 0, wantTotalPages: 0, wantLast: true},
		{name: "single partial page", page: 0, size: 10, items: []string{"a", "b", "c"}, total: 3, wantTotalPages: 1, wantLast: true},
		{name: "first of two", page: 0, size: 2, items: []string{"a", "b"}, total: 3, wantTotalPages: 2, wantLast: false},
		{name: "second of two", page: 1, size: 2, items: []string{"c"}, total: 3, wantTotalPages: 2, wantLast: true},
		{name: "exact multiple", page: 1, size: 2, items: []string{"c", "d"}, total: 4, wantTotalPages: 2, wantLast: true},
		{name: "beyond range", page: 5, size: 10, items: nil, total: 3, wantTotalPages: 1, wantLast: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewRequest(tt.page, tt.size, DefaultLimits())
			p := NewPage(tt.items, req, tt.total)

			assert.NotNil(t, p.Items)
			assert.Len(t, p.Items, len(tt.items))
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.size, p.Size)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.wantTotalPages, p.TotalPages)
			assert.Equal(t, tt.wantLast, p.Last)
		})
	}
}

func TestMap(t *testing.T) {
	p := NewPage([]int{1, 2}, NewRequest(0, 2, DefaultLimits()), 5)
	mapped := Map(p, func(i int) string { return string(rune('a' + i)) })

	assert.Equal(t, []string{"b", "c"}, mapped.Items)
	assert.Equal(t, p.Total, mapped.Total)
	assert.Equal(t, p.TotalPages, mapped.TotalPages)
	assert.False(t, mapped.Last)
}
