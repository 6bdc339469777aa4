package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestMaterial(t *testing.T) *Material {
	t.Helper()
	m, err := NewMaterial(NewMaterialParams{
		ID:          "m-1",
		Title:       "  Walnut shelf  ",
		Description: "Floating shelf in a living room",
		CategoryID:  "cat-1",
		OwnerID:     "u-owner",
		Tags:        []string{"wood", " wood ", "", "shelf"},
	}, testNow)
	require.NoError(t, err)
	return m
}

func TestNewMaterial(t *testing.T) {
	m := newTestMaterial(t)

	assert.Equal(t, "Walnut shelf", m.Title())
	assert.Equal(t, StatusPending, m.Status())
	assert.Equal(t, DefaultLicense, m.License())
	assert.Equal(t, []string{"wood", "shelf"}, m.Tags())
	assert.Equal(t, int64(0), m.FavoriteCount())
	assert.Equal(t, testNow, m.CreatedAt())

	require.Len(t, m.DomainEvents(), 1)
	event, ok := m.DomainEvents()[0].(*MaterialUploadedEvent)
	require.True(t, ok)
	assert.Equal(t, "material.uploaded", event.EventType())
	assert.Equal(t, "m-1", event.AggregateID())
}

func TestNewMaterial_Validation(t *testing.T) {
	base := NewMaterialParams{ID: "m", Title: "Oak table", CategoryID: "c", OwnerID: "u"}

	tests := []struct {
		name    string
		mutate  func(*NewMaterialParams)
		wantErr error
	}{
		{name: "short title", mutate: func(p *NewMaterialParams) { p.Title = " ab " }, wantErr: ErrInvalidTitle},
		{name: "long title", mutate: func(p *NewMaterialParams) { p.Title = strings.Repeat("x", 101) }, wantErr: ErrInvalidTitle},
		{name: "short description", mutate: func(p *NewMaterialParams) { p.Description = "ab" }, wantErr: ErrInvalidDescription},
		{name: "missing category", mutate: func(p *NewMaterialParams) { p.CategoryID = "" }, wantErr: ErrMissingCategory},
		{name: "missing owner", mutate: func(p *NewMaterialParams) { p.OwnerID = "" }, wantErr: ErrMissingOwner},
		{name: "too many tags", mutate: func(p *NewMaterialParams) {
			for i := 0; i < 21; i++ {
				p.Tags = append(p.Tags, strings.Repeat("t", i+1))
			}
		}, wantErr: ErrTooManyTags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			_, err := NewMaterial(p, testNow)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMaterial_ApproveClearsRejectReason(t *testing.T) {
	m := newTestMaterial(t)
	m.ClearEvents()

	require.NoError(t, m.Reject("blurry photo", testNow))
	assert.Equal(t, StatusRejected, m.Status())
	assert.Equal(t, "blurry photo", m.RejectReason())

	later := testNow.Add(time.Hour)
	require.NoError(t, m.Approve(later))
	assert.Equal(t, StatusApproved, m.Status())
	assert.Empty(t, m.RejectReason())
	assert.Equal(t, later, m.UpdatedAt())
	assert.True(t, m.Changes().Dirty(FieldRejectReason))
	assert.Equal(t, []string{FieldRejectReason, FieldStatus}, m.Changes().DirtyFields())

	require.Len(t, m.DomainEvents(), 2)
	assert.Equal(t, "material.rejected", m.DomainEvents()[0].EventType())
	assert.Equal(t, "material.approved", m.DomainEvents()[1].EventType())
}

func TestMaterial_ModerationErrors(t *testing.T) {
	m := newTestMaterial(t)

	assert.ErrorIs(t, m.Reject("   ", testNow), ErrRejectReasonMissing)
	assert.ErrorIs(t, m.Reject(strings.Repeat("r", MaxRejectReason+1), testNow), ErrRejectReasonTooLong)
	assert.Equal(t, StatusPending, m.Status())

	require.NoError(t, m.Approve(testNow))
	assert.ErrorIs(t, m.Approve(testNow), ErrAlreadyApproved)

	require.NoError(t, m.Reject("duplicate", testNow))
	assert.ErrorIs(t, m.Reject("again", testNow), ErrAlreadyRejected)
}

func TestMaterial_VisibleTo(t *testing.T) {
	m := newTestMaterial(t)

	assert.False(t, m.VisibleTo(Anonymous()))
	assert.True(t, m.VisibleTo(owner))
	assert.True(t, m.VisibleTo(admin))

	require.NoError(t, m.Approve(testNow))
	assert.True(t, m.VisibleTo(Anonymous()))
}

func TestReconstructMaterial_RoundTrip(t *testing.T) {
	m := newTestMaterial(t)
	rec := m.Record()
	rec.ViewCount = 7
	rec.FavoriteCount = 2
	rec.Version = 3

	restored := ReconstructMaterial(rec)
	assert.Equal(t, rec, restored.Record())
	assert.Empty(t, restored.DomainEvents())
	assert.False(t, restored.Changes().HasChanges())

	// Tags are copied, not shared
	rec.Tags[0] = "changed"
	assert.Equal(t, "wood", restored.Tags()[0])
}
