package projection

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/logger"
)

type stubFavorites struct {
	relations map[string]bool // materialID|userID
	err       error
	calls     int
}

func (s *stubFavorites) Toggle(ctx context.Context, materialID, userID string) (bool, error) {
	return false, errors.New("not used")
}

func (s *stubFavorites) IsFavorited(ctx context.Context, materialID, userID string) (bool, error) {
	s.calls++
	if s.err != nil {
		return false, s.err
	}
	return s.relations[materialID+"|"+userID], nil
}

func (s *stubFavorites) FavoritedAmong(ctx context.Context, userID string, ids []string) (map[string]bool, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := map[string]bool{}
	for _, id := range ids {
		if s.relations[id+"|"+userID] {
			out[id] = true
		}
	}
	return out, nil
}

var (
	owner    = domain.Caller{UserID: "u-owner", Username: "owner", Role: domain.RoleUser}
	stranger = domain.Caller{UserID: "u-other", Username: "other", Role: domain.RoleUser}
	admin    = domain.Caller{UserID: "u-admin", Username: "admin", Role: domain.RoleAdmin}
)

func rejectedRow() *contracts.MaterialDTO {
	return &contracts.MaterialDTO{
		ID:           "m-1",
		Title:        "Oak table",
		OwnerID:      "u-owner",
		Status:       domain.StatusRejected,
		RejectReason: "blurry",
	}
}

func TestShaper_RejectReasonOnlyForOwnerAndAdmin(t *testing.T) {
	s := NewShaper(&stubFavorites{}, logger.NewNop())
	ctx := context.Background()

	tests := []struct {
		name   string
		caller domain.Caller
		want   string
	}{
		{name: "owner", caller: owner, want: "blurry"},
		{name: "admin", caller: admin, want: "blurry"},
		{name: "stranger", caller: stranger, want: ""},
		{name: "anonymous", caller: domain.Anonymous(), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Detail(ctx, tt.caller, rejectedRow()).RejectReason)
			assert.Equal(t, tt.want, s.Summaries(ctx, tt.caller, []*contracts.MaterialDTO{rejectedRow()})[0].RejectReason)
		})
	}
}

func TestShaper_IsFavoritedUsesCallerLookup(t *testing.T) {
	favs := &stubFavorites{relations: map[string]bool{"m-1|u-other": true}}
	s := NewShaper(favs, logger.NewNop())
	ctx := context.Background()

	rows := []*contracts.MaterialDTO{{ID: "m-1", OwnerID: "u-owner"}, {ID: "m-2", OwnerID: "u-other"}}

	got := s.Summaries(ctx, stranger, rows)
	require.Len(t, got, 2)
	assert.True(t, got[0].IsFavorited)
	assert.False(t, got[1].IsFavorited)

	// The uploader does not count as a favorite of their own material.
	got = s.Summaries(ctx, owner, rows)
	assert.False(t, got[0].IsFavorited)

	assert.True(t, s.Detail(ctx, stranger, rows[0]).IsFavorited)
}

func TestShaper_AnonymousSkipsLookup(t *testing.T) {
	favs := &stubFavorites{}
	s := NewShaper(favs, logger.NewNop())

	s.Summaries(context.Background(), domain.Anonymous(), []*contracts.MaterialDTO{{ID: "m-1"}})
	s.Detail(context.Background(), domain.Anonymous(), &contracts.MaterialDTO{ID: "m-1"})
	assert.Zero(t, favs.calls)
}

func TestShaper_FailedLookupDegradesToFalse(t *testing.T) {
	favs := &stubFavorites{err: errors.New("store down")}
	s := NewShaper(favs, logger.NewNop())
	ctx := context.Background()

	got := s.Summaries(ctx, stranger, []*contracts.MaterialDTO{{ID: "m-1"}})
	require.Len(t, got, 1)
	assert.False(t, got[0].IsFavorited)

	detail := s.Detail(ctx, stranger, &contracts.MaterialDTO{ID: "m-1"})
	assert.False(t, detail.IsFavorited)
	assert.NotNil(t, detail.Tags)
}
