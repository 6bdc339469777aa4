package delete_material

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/materialtest"
	"github.com/niuTTu2/decoration-sharing-api/internal/blob"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/logger"
)

func TestDelete_OwnerRemovesMaterialFavoritesAndFiles(t *testing.T) {
	s, clk := materialtest.NewStore()
	ctx := context.Background()
	blobs := blob.NewMemoryStore("/files")
	imageURL, err := blobs.Store(ctx, "materials/m-1.jpg", "image/jpeg", []byte("img"))
	require.NoError(t, err)

	rec := materialtest.NewMaterial("m-1").Build()
	rec.ImageURL = imageURL
	rec.ThumbURL = imageURL
	s.AddMaterial(rec)
	_, err = s.Toggle(ctx, "m-1", materialtest.Bob.ID)
	require.NoError(t, err)

	uc := NewInteractor(s, blobs, clk, logger.NewNop())
	require.NoError(t, uc.Execute(ctx, &Request{MaterialID: "m-1", Caller: materialtest.Caller(materialtest.Alice)}))

	_, err = s.GetByID(ctx, "m-1")
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
	fav, err := s.IsFavorited(ctx, "m-1", materialtest.Bob.ID)
	require.NoError(t, err)
	assert.False(t, fav)
	assert.Zero(t, blobs.Len())

	events, _, err := s.ListEvents(ctx, &contracts.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "material.deleted", events[0].EventType)
}

func TestDelete_Permissions(t *testing.T) {
	s, clk := materialtest.NewStore()
	materialtest.NewMaterial("m-public").In(s)
	materialtest.NewMaterial("m-pending").Status(domain.StatusPending).In(s)
	materialtest.NewMaterial("m-admin").Status(domain.StatusPending).In(s)
	uc := NewInteractor(s, blob.NewMemoryStore("/files"), clk, logger.NewNop())
	ctx := context.Background()
	bob := materialtest.Caller(materialtest.Bob)

	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{name: "anonymous", req: &Request{MaterialID: "m-public"}, want: domain.ErrUnauthenticated},
		{name: "stranger on public", req: &Request{MaterialID: "m-public", Caller: bob}, want: domain.ErrForbidden},
		{name: "stranger on hidden", req: &Request{MaterialID: "m-pending", Caller: bob}, want: domain.ErrMaterialNotFound},
		{name: "unknown", req: &Request{MaterialID: "nope", Caller: bob}, want: domain.ErrMaterialNotFound},
		{name: "admin", req: &Request{MaterialID: "m-admin", Caller: materialtest.Caller(materialtest.Root)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := uc.Execute(ctx, tt.req)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
