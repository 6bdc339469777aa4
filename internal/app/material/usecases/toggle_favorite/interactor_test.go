package toggle_favorite

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/materialtest"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/logger"
)

func TestToggleFavorite_Parity(t *testing.T) {
	s, _ := materialtest.NewStore()
	materialtest.NewMaterial("m-1").In(s)
	uc := NewInteractor(s, s, logger.NewNop())
	bob := materialtest.Caller(materialtest.Bob)

	for n := 1; n <= 5; n++ {
		res, err := uc.Execute(context.Background(), &Request{MaterialID: "m-1", Caller: bob})
		require.NoError(t, err)
		assert.Equal(t, n%2 == 1, res.Favorited)
		if res.Favorited {
			assert.Equal(t, int64(1), res.FavoriteCount)
		} else {
			assert.Equal(t, int64(0), res.FavoriteCount)
		}
	}
}

func TestToggleFavorite_ConcurrentUsers(t *testing.T) {
	s, _ := materialtest.NewStore()
	materialtest.NewMaterial("m-1").In(s)
	uc := NewInteractor(s, s, logger.NewNop())

	const users = 40
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			caller := domain.Caller{UserID: fmt.Sprintf("user-%d", i), Role: domain.RoleUser}
			_, err := uc.Execute(context.Background(), &Request{MaterialID: "m-1", Caller: caller})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	counter, relations := s.FavoriteCount("m-1")
	assert.Equal(t, int64(users), counter)
	assert.Equal(t, relations, counter)
}

func TestToggleFavorite_Errors(t *testing.T) {
	s, _ := materialtest.NewStore()
	materialtest.NewMaterial("m-pending").Status(domain.StatusPending).In(s)
	uc := NewInteractor(s, s, logger.NewNop())
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{MaterialID: "m-pending"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = uc.Execute(ctx, &Request{MaterialID: "missing", Caller: materialtest.Caller(materialtest.Bob)})
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)

	_, err = uc.Execute(ctx, &Request{MaterialID: "m-pending", Caller: materialtest.Caller(materialtest.Bob)})
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)

	// The owner can favorite their own pending material.
	res, err := uc.Execute(ctx, &Request{MaterialID: "m-pending", Caller: materialtest.Caller(materialtest.Alice)})
	require.NoError(t, err)
	assert.True(t, res.Favorited)
}

func TestToggleFavorite_CanRemoveFavoriteOfHiddenMaterial(t *testing.T) {
	s, _ := materialtest.NewStore()
	ctx := context.Background()
	materialtest.NewMaterial("m-1").In(s)
	uc := NewInteractor(s, s, logger.NewNop())
	bob := materialtest.Caller(materialtest.Bob)

	res, err := uc.Execute(ctx, &Request{MaterialID: "m-1", Caller: bob})
	require.NoError(t, err)
	require.True(t, res.Favorited)

	m, err := s.GetByID(ctx, "m-1")
	require.NoError(t, err)
	require.NoError(t, m.Reject("copyright", materialtest.T0))
	require.NoError(t, s.SaveModeration(ctx, m, nil))

	res, err = uc.Execute(ctx, &Request{MaterialID: "m-1", Caller: bob})
	require.NoError(t, err)
	assert.False(t, res.Favorited)
	assert.Equal(t, int64(0), res.FavoriteCount)

	_, err = uc.Execute(ctx, &Request{MaterialID: "m-1", Caller: bob})
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
}
