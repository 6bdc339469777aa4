//go:build integration

package repo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/filter"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/clock"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/committer"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/paging"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/testutil"
)

type fixture struct {
	client    *spanner.Client
	materials *MaterialRepo
	reads     *ReadModelImpl
	favorites *FavoriteStore
	events    *EventsReadModel
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	client := testutil.SetupSpannerTest(t)
	comm := committer.NewCommitter(client)

	categories := NewCategoryRepo(client)
	users := NewUserRepo(client)
	require.NoError(t, categories.Save(ctx, domain.Category{ID: "cat-1", Name: "Living room"}))
	require.NoError(t, users.Save(ctx, domain.User{
		ID: "u-alice", Username: "alice", Email: "alice@example.com",
		Role: domain.RoleUser, Status: domain.AccountActive,
	}))

	return &fixture{
		client:    client,
		materials: NewMaterialRepo(client, comm, NewOutboxRepo()),
		reads:     NewReadModel(client),
		favorites: NewFavoriteStore(client, comm, clock.NewRealClock()),
		events:    NewEventsReadModel(client),
	}
}

func (f *fixture) upload(t *testing.T, id string, created time.Time) *domain.Material {
	t.Helper()
	m, err := domain.NewMaterial(domain.NewMaterialParams{
		ID:          id,
		Title:       "Oak table " + id,
		Description: "solid wood",
		ImageURL:    "/files/" + id + ".jpg",
		ThumbURL:    "/files/" + id + "_thumb.jpg",
		CategoryID:  "cat-1",
		OwnerID:     "u-alice",
		Tags:        []string{"wood"},
	}, created)
	require.NoError(t, err)

	events, err := contracts.EnrichEvents(m.DomainEvents())
	require.NoError(t, err)
	require.NoError(t, f.materials.Create(context.Background(), m, events))
	return m
}

func TestMaterialRepo_CreateAndModerate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.upload(t, "m-1", time.Now().UTC())

	stored, err := f.materials.GetByID(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status())
	assert.Equal(t, []string{"wood"}, stored.Tags())

	stale, err := f.materials.GetByID(ctx, "m-1")
	require.NoError(t, err)

	require.NoError(t, stored.Reject("blurry", time.Now()))
	require.NoError(t, f.materials.SaveModeration(ctx, stored, nil))

	require.NoError(t, stale.Approve(time.Now()))
	err = f.materials.SaveModeration(ctx, stale, nil)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)

	dto, err := f.reads.GetMaterialByID(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, dto.Status)
	assert.Equal(t, "blurry", dto.RejectReason)
	assert.Equal(t, "Living room", dto.CategoryName)
	assert.Equal(t, "alice", dto.OwnerUsername)

	testutil.AssertRowCount(t, f.client, "outbox_events", 1)
}

func TestReadModel_ListMaterials(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	for i := 0; i < 3; i++ {
		m := f.upload(t, fmt.Sprintf("m-%d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, m.Approve(time.Now()))
		require.NoError(t, f.materials.SaveModeration(ctx, m, nil))
	}
	f.upload(t, "m-pending", base.Add(time.Hour))

	plan, err := filter.Build(filter.Input{Keyword: "OAK"})
	require.NoError(t, err)

	items, total, err := f.reads.ListMaterials(ctx, plan, paging.NewRequest(0, 2, paging.DefaultLimits()))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 2)
	assert.Equal(t, "m-2", items[0].ID)
	assert.Equal(t, "m-1", items[1].ID)

	items, total, err = f.reads.ListMaterials(ctx, plan, paging.NewRequest(9, 2, paging.DefaultLimits()))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, items)
}

func TestFavoriteStore_ConcurrentToggles(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.upload(t, "m-1", time.Now().UTC())

	const users = 10
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.favorites.Toggle(ctx, "m-1", fmt.Sprintf("user-%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	dto, err := f.reads.GetMaterialByID(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, int64(users), dto.FavoriteCount)
	testutil.AssertRowCount(t, f.client, "favorites", users)

	favorited, err := f.favorites.Toggle(ctx, "m-1", "user-0")
	require.NoError(t, err)
	assert.False(t, favorited)

	among, err := f.favorites.FavoritedAmong(ctx, "user-1", []string{"m-1", "m-x"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"m-1": true}, among)

	_, err = f.favorites.Toggle(ctx, "missing", "user-0")
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
}

func TestMaterialRepo_DeleteCascadesFavorites(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	m := f.upload(t, "m-1", time.Now().UTC())

	_, err := f.favorites.Toggle(ctx, "m-1", "u-alice")
	require.NoError(t, err)
	require.NoError(t, f.materials.IncrementViews(ctx, "m-1"))

	require.NoError(t, f.materials.Delete(ctx, m, nil))
	testutil.AssertRowCount(t, f.client, "favorites", 0)

	_, err = f.materials.GetByID(ctx, "m-1")
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
	assert.ErrorIs(t, f.materials.IncrementViews(ctx, "m-1"), domain.ErrMaterialNotFound)
}

func TestEventsReadModel_ListEvents(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.upload(t, "m-1", time.Now().UTC())
	f.upload(t, "m-2", time.Now().UTC())

	aggregate := "m-2"
	events, total, err := f.events.ListEvents(ctx, &contracts.EventFilter{AggregateID: &aggregate, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, events, 1)
	assert.Equal(t, "material.uploaded", events[0].EventType)
	assert.Contains(t, events[0].Payload, `"materialId":"m-2"`)
}
