package contracts

import (
	"context"
	"time"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/filter"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/paging"
)

// MaterialDTO is a material joined with its category and owner names.
type MaterialDTO struct {
	ID             string
	Title          string
	Description    string
	ImageURL       string
	ThumbURL       string
	CategoryID     string
	CategoryName   string
	OwnerID        string
	OwnerUsername  string
	OwnerAvatarURL string
	ViewCount      int64
	FavoriteCount  int64
	Tags           []string
	License        string
	Status         domain.ModerationStatus
	RejectReason   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReadModel defines read-only material queries.
type ReadModel interface {
	// GetMaterialByID returns domain.ErrMaterialNotFound when absent.
	// Visibility is decided by the caller.
	GetMaterialByID(ctx context.Context, materialID string) (*MaterialDTO, error)

	// ListMaterials executes plan and returns one page of rows plus the total
	// number of matching rows.
	ListMaterials(ctx context.Context, plan *filter.Plan, page paging.Request) ([]*MaterialDTO, int64, error)
}
