package toggle_favorite

import (
	"context"
	"fmt"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/logger"
)

// Request identifies the relation to flip.
type Request struct {
	MaterialID string
	Caller     domain.Caller
}

// Result is the state after the toggle.
type Result struct {
	MaterialID    string `json:"materialId"`
	Favorited     bool   `json:"favorited"`
	FavoriteCount int64  `json:"favoriteCount"`
}

// Interactor handles the toggle favorite use case.
type Interactor struct {
	readModel contracts.ReadModel
	favorites contracts.FavoriteStore
	logger    *logger.Logger
}

// NewInteractor creates a new toggle favorite interactor.
func NewInteractor(readModel contracts.ReadModel, favorites contracts.FavoriteStore, log *logger.Logger) *Interactor {
	return &Interactor{
		readModel: readModel,
		favorites: favorites,
		logger:    log.With("component", "toggle_favorite"),
	}
}

// Execute flips the caller's favorite on a material. The relation and the
// material's counter change together in the store.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	// 1. Require an identity
	if !req.Caller.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}

	// 2. Resolve material and visibility
	row, err := i.readModel.GetMaterialByID(ctx, req.MaterialID)
	if err != nil {
		return nil, err
	}
	if !domain.CanView(req.Caller, row.OwnerID, row.Status) {
		// Removing a favorite of a material that has since been hidden is allowed.
		already, err := i.favorites.IsFavorited(ctx, row.ID, req.Caller.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to check favorite: %w", err)
		}
		if !already {
			return nil, domain.ErrMaterialNotFound
		}
	}

	// 3. Toggle atomically
	favorited, err := i.favorites.Toggle(ctx, row.ID, req.Caller.UserID)
	if err != nil {
		return nil, err
	}

	// 4. Read back the counter
	count := row.FavoriteCount
	if fresh, err := i.readModel.GetMaterialByID(ctx, row.ID); err == nil {
		count = fresh.FavoriteCount
	} else {
		i.logger.Warn("favorite count reload failed", "material_id", row.ID, "error", err)
		if favorited {
			count++
		} else if count > 0 {
			count--
		}
	}

	i.logger.Debug("favorite toggled", "material_id", row.ID, "user_id", req.Caller.UserID, "favorited", favorited)
	return &Result{MaterialID: row.ID, Favorited: favorited, FavoriteCount: count}, nil
}
