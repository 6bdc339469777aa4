package search_materials

import (
	"context"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/filter"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/projection"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/listing"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/paging"
)

// Request contains the search keyword and pagination parameters.
type Request struct {
	Caller     domain.Caller
	Keyword    string
	CategoryID string
	Page       int
	PageSize   int
}

// Query handles keyword search. Results are always newest first; a blank
// keyword returns the plain listing.
type Query struct {
	lister *listing.Lister
}

// NewQuery creates a new search materials query.
func NewQuery(lister *listing.Lister) *Query {
	return &Query{lister: lister}
}

// Execute searches titles and descriptions.
func (q *Query) Execute(ctx context.Context, req *Request) (*paging.Page[*projection.Summary], error) {
	return q.lister.Run(ctx, filter.Input{
		Caller:     req.Caller,
		CategoryID: req.CategoryID,
		Keyword:    req.Keyword,
		SortKey:    string(filter.SortLatest),
	}, req.Page, req.PageSize)
}
