package blob

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	// Decoders for the accepted upload formats.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
)

const thumbnailQuality = 85

// Thumbnailer scales images down to a fixed width and encodes them as JPEG.
type Thumbnailer struct {
	width int
}

var _ contracts.Thumbnailer = (*Thumbnailer)(nil)

// NewThumbnailer creates a Thumbnailer for the given target width.
func NewThumbnailer(width int) *Thumbnailer {
	return &Thumbnailer{width: width}
}

// CreateThumbnail keeps the aspect ratio. Images narrower than the target
// width are re-encoded without upscaling.
func (t *Thumbnailer) CreateThumbnail(data []byte) ([]byte, string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, "", fmt.Errorf("decode image: empty bounds")
	}

	w, h := b.Dx(), b.Dy()
	if w > t.width {
		h = h * t.width / w
		if h < 1 {
			h = 1
		}
		w = t.width
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// JPEG has no alpha channel.
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return nil, "", fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}
