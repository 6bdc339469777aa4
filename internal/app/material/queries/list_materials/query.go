package list_materials

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
	Status     string
	Keyword    string
	Sort       string
	Page       int
	PageSize   int

	// OwnerScope lists only the caller's own materials ("my materials").
	OwnerScope bool
	// AllStatuses lets an admin list every moderation state when Status is
	// blank. Without it admins browse approved materials only.
	AllStatuses bool
}

// Query handles the list materials query use case.
type Query struct {
	lister *listing.Lister
}

// NewQuery creates a new list materials query.
func NewQuery(lister *listing.Lister) *Query {
	return &Query{lister: lister}
}

// Execute retrieves one page of materials visible to the caller.
func (q *Query) Execute(ctx context.Context, req *Request) (*paging.Page[*projection.Summary], error) {
	return q.lister.Run(ctx, filter.Input{
		Caller:      req.Caller,
		CategoryID:  req.CategoryID,
		StatusRaw:   req.Status,
		Keyword:     req.Keyword,
		SortKey:     req.Sort,
		OwnerScope:  req.OwnerScope,
		AllStatuses: req.AllStatuses,
	}, req.Page, req.PageSize)
}
