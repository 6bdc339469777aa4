package list_favorites

import (
	"context"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/filter"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/projection"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/listing"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/paging"
)

// Request contains filtering and pagination parameters.
type Request struct {
	Caller     domain.Caller
	CategoryID string
	Keyword    string
	Sort       string
	Page       int
	PageSize   int
}

// Query lists the materials the caller favorited. Favorites of materials the
// caller can no longer see are left out.
type Query struct {
	lister *listing.Lister
}

// NewQuery creates a new list favorites query.
func NewQuery(lister *listing.Lister) *Query {
	return &Query{lister: lister}
}

// Execute returns domain.ErrUnauthenticated for anonymous callers.
func (q *Query) Execute(ctx context.Context, req *Request) (*paging.Page[*projection.Summary], error) {
	return q.lister.Run(ctx, filter.Input{
		Caller:        req.Caller,
		CategoryID:    req.CategoryID,
		Keyword:       req.Keyword,
		SortKey:       req.Sort,
		FavoritesOnly: true,
	}, req.Page, req.PageSize)
}
