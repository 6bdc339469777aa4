package check_favorite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/materialtest"
)

func TestCheckFavorite(t *testing.T) {
	s, _ := materialtest.NewStore()
	ctx := context.Background()
	materialtest.NewMaterial("m-1").In(s)
	materialtest.NewMaterial("m-hidden").Status(domain.StatusPending).In(s)
	materialtest.NewMaterial("m-was-liked").In(s)
	_, err := s.Toggle(ctx, "m-1", materialtest.Bob.ID)
	require.NoError(t, err)
	_, err = s.Toggle(ctx, "m-was-liked", materialtest.Bob.ID)
	require.NoError(t, err)
	materialtest.NewMaterial("m-was-liked").Rejected("spam").In(s)

	q := NewQuery(s, s)
	bob := materialtest.Caller(materialtest.Bob)

	res, err := q.Execute(ctx, &Request{MaterialID: "m-1", Caller: bob})
	require.NoError(t, err)
	assert.True(t, res.Favorited)
	assert.Equal(t, int64(1), res.FavoriteCount)

	res, err = q.Execute(ctx, &Request{MaterialID: "m-1", Caller: materialtest.Caller(materialtest.Root)})
	require.NoError(t, err)
	assert.False(t, res.Favorited)

	res, err = q.Execute(ctx, &Request{MaterialID: "m-was-liked", Caller: bob})
	require.NoError(t, err)
	assert.True(t, res.Favorited)

	_, err = q.Execute(ctx, &Request{MaterialID: "m-hidden", Caller: bob})
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)

	_, err = q.Execute(ctx, &Request{MaterialID: "m-1"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
