package contracts

import (
	"context"
	"errors"
)

// ErrBlobStorage wraps every failure of the file store.
var ErrBlobStorage = errors.New("blob storage failure")

// BlobStorage stores uploaded files and returns a public locator.
type BlobStorage interface {
	// Store writes data under key and returns its public URL.
	Store(ctx context.Context, key, contentType string, data []byte) (url string, err error)
	// Remove deletes the file behind a URL returned by Store. Unknown URLs
	// are not an error.
	Remove(ctx context.Context, url string) error
}

// Thumbnailer renders a reduced preview of an image.
type Thumbnailer interface {
	CreateThumbnail(data []byte) (thumb []byte, contentType string, err error)
}
