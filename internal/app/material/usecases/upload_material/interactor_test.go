package upload_material

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/materialtest"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/repo/memory"
	"github.com/niuTTu2/decoration-sharing-api/internal/blob"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/clock"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/logger"
)

var policy = Policy{MaxBytes: 1 << 20, AllowedTypes: []string{"image/png", "image/jpeg"}}

type brokenThumbnailer struct{}

func (brokenThumbnailer) CreateThumbnail([]byte) ([]byte, string, error) {
	return nil, "", errors.New("unsupported palette")
}

type failingBlobs struct{}

func (failingBlobs) Store(context.Context, string, string, []byte) (string, error) {
	return "", errors.New("bucket unreachable")
}

func (failingBlobs) Remove(context.Context, string) error { return nil }

func samplePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 640, 480))))
	return buf.Bytes()
}

func validRequest(t *testing.T) *Request {
	return &Request{
		Caller:      materialtest.Caller(materialtest.Alice),
		Title:       "Terrazzo floor",
		Description: "Close-up of a terrazzo floor",
		CategoryID:  materialtest.Kitchen.ID,
		Tags:        []string{"floor", " stone ", "floor"},
		FileName:    "terrazzo.PNG",
		ContentType: "image/png",
		Data:        samplePNG(t),
	}
}

func newInteractor(s *memory.Store, blobs contracts.BlobStorage, th contracts.Thumbnailer) *Interactor {
	return NewInteractor(s, s, s, blobs, th, policy, clock.NewMockClock(materialtest.T0), logger.NewNop())
}

func TestUpload_StoresPendingMaterial(t *testing.T) {
	s, _ := materialtest.NewStore()
	blobs := blob.NewMemoryStore("/files")
	uc := newInteractor(s, blobs, blob.NewThumbnailer(300))
	ctx := context.Background()

	res, err := uc.Execute(ctx, validRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "PENDING", res.Status)
	assert.Contains(t, res.ImageURL, "/files/materials/2026/03/"+res.MaterialID+".png")
	assert.Contains(t, res.ThumbURL, res.MaterialID+"_thumb.jpg")
	assert.Equal(t, 2, blobs.Len())

	m, err := s.GetByID(ctx, res.MaterialID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, m.Status())
	assert.Equal(t, materialtest.Alice.ID, m.OwnerID())
	assert.Equal(t, []string{"floor", "stone"}, m.Tags())
	assert.Equal(t, domain.DefaultLicense, m.License())

	events, _, err := s.ListEvents(ctx, &contracts.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "material.uploaded", events[0].EventType)
}

func TestUpload_ThumbnailFailureFallsBackToImage(t *testing.T) {
	s, _ := materialtest.NewStore()
	blobs := blob.NewMemoryStore("/files")

	res, err := newInteractor(s, blobs, brokenThumbnailer{}).Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.Equal(t, res.ImageURL, res.ThumbURL)
	assert.Equal(t, 1, blobs.Len())
}

func TestUpload_UnknownCategoryWritesNothing(t *testing.T) {
	s, _ := materialtest.NewStore()
	blobs := blob.NewMemoryStore("/files")

	req := validRequest(t)
	req.CategoryID = "cat-unknown"
	_, err := newInteractor(s, blobs, blob.NewThumbnailer(300)).Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	assert.Zero(t, blobs.Len())
}

func TestUpload_BlobFailure(t *testing.T) {
	s, _ := materialtest.NewStore()
	_, err := newInteractor(s, failingBlobs{}, blob.NewThumbnailer(300)).Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, contracts.ErrBlobStorage)
}

func TestUpload_Validation(t *testing.T) {
	s, _ := materialtest.NewStore()
	blobs := blob.NewMemoryStore("/files")
	uc := newInteractor(s, blobs, blob.NewThumbnailer(300))

	tests := []struct {
		name   string
		mutate func(r *Request)
		want   error
	}{
		{name: "anonymous", mutate: func(r *Request) { r.Caller = domain.Anonymous() }, want: domain.ErrUnauthenticated},
		{name: "blocked account", mutate: func(r *Request) { r.Caller = domain.Caller{UserID: materialtest.Mallory.ID, Username: "mallory"} }, want: domain.ErrAccountBlocked},
		{name: "unknown owner", mutate: func(r *Request) { r.Caller = domain.Caller{UserID: "u-ghost", Username: "ghost"} }, want: domain.ErrUserNotFound},
		{name: "short title", mutate: func(r *Request) { r.Title = "ab" }, want: domain.ErrInvalidTitle},
		{name: "missing category", mutate: func(r *Request) { r.CategoryID = " " }, want: domain.ErrMissingCategory},
		{name: "empty file", mutate: func(r *Request) { r.Data = nil }, want: domain.ErrEmptyFile},
		{name: "too large", mutate: func(r *Request) { r.Data = make([]byte, policy.MaxBytes+1) }, want: domain.ErrFileTooLarge},
		{name: "no extension", mutate: func(r *Request) { r.FileName = "terrazzo" }, want: domain.ErrInvalidFileName},
		{name: "declared type not allowed", mutate: func(r *Request) { r.ContentType = "image/gif" }, want: domain.ErrUnsupportedType},
		{name: "content is not an image", mutate: func(r *Request) { r.Data = []byte("plain text pretending") }, want: domain.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, blobs.Len())
}
