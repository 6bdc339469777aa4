package contracts

import "context"

// FavoriteStore owns the favorite relation and the denormalized counter on
// materials. Implementations keep both consistent under concurrency.
type FavoriteStore interface {
	// Toggle flips the (material, user) relation and adjusts the material's
	// favorite counter in the same atomic unit. Returns the new state.
	// Returns domain.ErrMaterialNotFound when the material does not exist.
	Toggle(ctx context.Context, materialID, userID string) (favorited bool, err error)

	// IsFavorited reports whether the relation exists.
	IsFavorited(ctx context.Context, materialID, userID string) (bool, error)

	// FavoritedAmong returns the subset of materialIDs favorited by userID.
	FavoritedAmong(ctx context.Context, userID string, materialIDs []string) (map[string]bool, error)
}
