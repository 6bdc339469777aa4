package check_favorite

import (
	"context"
	"fmt"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
)

// Request identifies the relation to check.
type Request struct {
	MaterialID string
	Caller     domain.Caller
}

// Result is the caller's favorite state for one material.
type Result struct {
	MaterialID    string `json:"materialId"`
	Favorited     bool   `json:"favorited"`
	FavoriteCount int64  `json:"favoriteCount"`
}

// Query reads the favorite state without changing it.
type Query struct {
	readModel contracts.ReadModel
	favorites contracts.FavoriteStore
}

// NewQuery creates a new check favorite query.
func NewQuery(readModel contracts.ReadModel, favorites contracts.FavoriteStore) *Query {
	return &Query{readModel: readModel, favorites: favorites}
}

// Execute returns domain.ErrUnauthenticated for anonymous callers and
// domain.ErrMaterialNotFound for unknown materials.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	if !req.Caller.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}

	row, err := q.readModel.GetMaterialByID(ctx, req.MaterialID)
	if err != nil {
		return nil, err
	}

	favorited, err := q.favorites.IsFavorited(ctx, row.ID, req.Caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check favorite: %w", err)
	}

	// A hidden material is only reported to callers who already favorited it.
	if !favorited && !domain.CanView(req.Caller, row.OwnerID, row.Status) {
		return nil, domain.ErrMaterialNotFound
	}

	return &Result{MaterialID: row.ID, Favorited: favorited, FavoriteCount: row.FavoriteCount}, nil
}
