package blob

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestMemoryStore_StoreAndRemove(t *testing.T) {
	s := NewMemoryStore("/files/")
	ctx := context.Background()

	url, err := s.Store(ctx, "materials/m-1.png", "image/png", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "/files/materials/m-1.png", url)

	data, contentType, ok := s.Open("materials/m-1.png")
	require.True(t, ok)
	assert.Equal(t, []byte("data"), data)
	assert.Equal(t, "image/png", contentType)

	require.NoError(t, s.Remove(ctx, "https://elsewhere/materials/m-1.png"))
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Remove(ctx, url))
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_EmptyKey(t *testing.T) {
	_, err := NewMemoryStore("/files").Store(context.Background(), "", "image/png", nil)
	assert.ErrorIs(t, err, contracts.ErrBlobStorage)
}

func TestThumbnailer(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		wantW int
		wantH int
	}{
		{name: "wide image is scaled", w: 600, h: 400, wantW: 300, wantH: 200},
		{name: "small image keeps size", w: 120, h: 80, wantW: 120, wantH: 80},
		{name: "thin strip keeps one row", w: 1200, h: 2, wantW: 300, wantH: 1},
	}

	th := NewThumbnailer(300)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, contentType, err := th.CreateThumbnail(pngOf(t, tt.w, tt.h))
			require.NoError(t, err)
			assert.Equal(t, "image/jpeg", contentType)

			img, err := jpeg.Decode(bytes.NewReader(out))
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, img.Bounds().Dx())
			assert.Equal(t, tt.wantH, img.Bounds().Dy())
		})
	}
}

func TestThumbnailer_RejectsNonImage(t *testing.T) {
	_, _, err := NewThumbnailer(300).CreateThumbnail([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestMemoryStore_ServeHTTP(t *testing.T) {
	s := NewMemoryStore("/files")
	_, err := s.Store(context.Background(), "materials/a.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)

	h := http.StripPrefix("/files/", s)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/materials/a.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/materials/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
