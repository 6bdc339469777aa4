package list_favorites

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/materialtest"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/projection"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/listing"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/logger"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/paging"
)

func TestListFavorites(t *testing.T) {
	s, _ := materialtest.NewStore()
	ctx := context.Background()
	materialtest.NewMaterial("m-liked").Owner(materialtest.Alice).In(s)
	materialtest.NewMaterial("m-other").Owner(materialtest.Alice).In(s)
	materialtest.NewMaterial("m-hidden").Owner(materialtest.Alice).Rejected("spam").In(s)
	materialtest.NewMaterial("m-own-pending").Owner(materialtest.Bob).Status(domain.StatusPending).In(s)

	for _, id := range []string{"m-liked", "m-hidden", "m-own-pending"} {
		_, err := s.Toggle(ctx, id, materialtest.Bob.ID)
		require.NoError(t, err)
	}

	log := logger.NewNop()
	q := NewQuery(listing.NewLister(s, projection.NewShaper(s, log), paging.DefaultLimits(), log))

	page, err := q.Execute(ctx, &Request{Caller: materialtest.Caller(materialtest.Bob), Sort: "name"})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "m-liked", page.Items[0].ID)
	assert.Equal(t, "m-own-pending", page.Items[1].ID)
	for _, item := range page.Items {
		assert.True(t, item.IsFavorited)
	}

	_, err = q.Execute(ctx, &Request{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
