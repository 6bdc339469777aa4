package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/models/m_favorite"
	"github.com/niuTTu2/decoration-sharing-api/internal/models/m_material"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/clock"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/committer"
)

// FavoriteStore keeps favorites and materials.favorite_count in step by
// writing both inside one read-write transaction.
type FavoriteStore struct {
	client    *spanner.Client
	committer *committer.Committer
	favorites *m_favorite.Model
	materials *m_material.Model
	clock     clock.Clock
}

// NewFavoriteStore creates a new FavoriteStore.
func NewFavoriteStore(client *spanner.Client, comm *committer.Committer, clk clock.Clock) *FavoriteStore {
	return &FavoriteStore{
		client:    client,
		committer: comm,
		favorites: m_favorite.NewModel(),
		materials: m_material.NewModel(),
		clock:     clk,
	}
}

var _ contracts.FavoriteStore = (*FavoriteStore)(nil)

// Toggle flips the relation. Reading the material row inside the transaction
// serializes concurrent toggles on the same material.
func (s *FavoriteStore) Toggle(ctx context.Context, materialID, userID string) (bool, error) {
	var favorited bool

	err := s.committer.ApplyWithReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, m_material.TableName, spanner.Key{materialID}, []string{m_material.FavoriteCount})
		if err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return domain.ErrMaterialNotFound
			}
			return err
		}
		var counter int64
		if err := row.Column(0, &counter); err != nil {
			return err
		}

		exists, err := relationExists(ctx, txn, s.favorites.Key(materialID, userID))
		if err != nil {
			return err
		}

		var muts []*spanner.Mutation
		if exists {
			favorited = false
			if counter > 0 {
				counter--
			}
			muts = append(muts, s.favorites.DeleteMut(materialID, userID))
		} else {
			favorited = true
			counter++
			muts = append(muts, s.favorites.InsertMut(&m_favorite.Data{
				MaterialID: materialID,
				UserID:     userID,
				CreatedAt:  s.clock.Now(),
			}))
		}
		muts = append(muts, s.materials.FavoriteCountMut(materialID, counter))
		return txn.BufferWrite(muts)
	})
	if err != nil {
		if errors.Is(err, domain.ErrMaterialNotFound) {
			return false, domain.ErrMaterialNotFound
		}
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	return favorited, nil
}

// IsFavorited reports whether the relation exists.
func (s *FavoriteStore) IsFavorited(ctx context.Context, materialID, userID string) (bool, error) {
	exists, err := relationExists(ctx, s.client.Single(), s.favorites.Key(materialID, userID))
	if err != nil {
		return false, fmt.Errorf("failed to read favorite: %w", err)
	}
	return exists, nil
}

// FavoritedAmong reads the relations of userID for materialIDs by primary key.
func (s *FavoriteStore) FavoritedAmong(ctx context.Context, userID string, materialIDs []string) (map[string]bool, error) {
	out := make(map[string]bool)
	if len(materialIDs) == 0 {
		return out, nil
	}

	keys := make([]spanner.KeySet, 0, len(materialIDs))
	for _, id := range materialIDs {
		keys = append(keys, s.favorites.Key(id, userID))
	}

	iter := s.client.Single().Read(ctx, m_favorite.TableName, spanner.KeySets(keys...), []string{m_favorite.MaterialID})
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read favorites: %w", err)
		}
		var materialID string
		if err := row.Column(0, &materialID); err != nil {
			return nil, fmt.Errorf("failed to parse favorite: %w", err)
		}
		out[materialID] = true
	}
	return out, nil
}

type rowReader interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
}

func relationExists(ctx context.Context, r rowReader, key spanner.Key) (bool, error) {
	_, err := r.ReadRow(ctx, m_favorite.TableName, key, []string{m_favorite.MaterialID})
	if err == nil {
		return true, nil
	}
	if spanner.ErrCode(err) == codes.NotFound {
		return false, nil
	}
	return false, err
}
