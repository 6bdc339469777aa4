package get_material

import (
	"context"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/projection"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/logger"
)

// Request contains the material ID to retrieve.
type Request struct {
	MaterialID string
	Caller     domain.Caller
}

// ViewCounter records detail views.
type ViewCounter interface {
	IncrementViews(ctx context.Context, materialID string) error
}

// Query handles the get material query use case.
type Query struct {
	readModel contracts.ReadModel
	views     ViewCounter
	shaper    *projection.Shaper
	logger    *logger.Logger
}

// NewQuery creates a new get material query.
func NewQuery(readModel contracts.ReadModel, views ViewCounter, shaper *projection.Shaper, log *logger.Logger) *Query {
	return &Query{
		readModel: readModel,
		views:     views,
		shaper:    shaper,
		logger:    log.With("component", "get_material"),
	}
}

// Execute retrieves a material. Materials the caller may not see are
// reported as not found. Every successful fetch counts as one view.
func (q *Query) Execute(ctx context.Context, req *Request) (*projection.Detail, error) {
	// 1. Load row
	row, err := q.readModel.GetMaterialByID(ctx, req.MaterialID)
	if err != nil {
		return nil, err
	}

	// 2. Apply visibility
	if !domain.CanView(req.Caller, row.OwnerID, row.Status) {
		return nil, domain.ErrMaterialNotFound
	}

	// 3. Count the view; failures do not fail the fetch
	if err := q.views.IncrementViews(ctx, row.ID); err != nil {
		q.logger.Warn("view increment failed", "material_id", row.ID, "error", err)
	} else {
		row.ViewCount++
	}

	// 4. Shape for caller
	return q.shaper.Detail(ctx, req.Caller, row), nil
}
