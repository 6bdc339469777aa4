// Package listing runs a filter plan against the read model and shapes the
// resulting page. The list, search and favorites queries all go through it.
package listing

import (
	"context"
	"fmt"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/filter"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/projection"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/logger"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/paging"
)

// Lister executes listings.
type Lister struct {
	readModel contracts.ReadModel
	shaper    *projection.Shaper
	limits    paging.Limits
	logger    *logger.Logger
}

// NewLister creates a new Lister.
func NewLister(readModel contracts.ReadModel, shaper *projection.Shaper, limits paging.Limits, log *logger.Logger) *Lister {
	return &Lister{
		readModel: readModel,
		shaper:    shaper,
		limits:    limits,
		logger:    log.With("component", "listing"),
	}
}

// Run builds the plan for in, fetches the requested page and shapes it for
// in.Caller.
func (l *Lister) Run(ctx context.Context, in filter.Input, page, size int) (*paging.Page[*projection.Summary], error) {
	plan, err := filter.Build(in)
	if err != nil {
		return nil, err
	}
	if raw := plan.IgnoredStatus(); raw != "" {
		l.logger.Debug("status filter ignored", "status", raw, "user_id", in.Caller.UserID)
	}
	if raw := plan.IgnoredSort(); raw != "" {
		l.logger.Warn("unknown sort key, using latest", "sort", raw)
	}

	req := paging.NewRequest(page, size, l.limits)
	if req.Clamped {
		l.logger.Warn("page request clamped", "page", page, "size", size, "effective_page", req.Page, "effective_size", req.Size)
	}

	rows, total, err := l.readModel.ListMaterials(ctx, plan, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}

	return paging.NewPage(l.shaper.Summaries(ctx, in.Caller, rows), req, total), nil
}
