// Package blob stores uploaded material files and renders thumbnails.
package blob

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
)

type object struct {
	contentType string
	data        []byte
}

// MemoryStore keeps files in process memory. Files are served by the HTTP
// transport under the public base URL.
type MemoryStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]object
}

var _ contracts.BlobStorage = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(publicBaseURL string) *MemoryStore {
	return &MemoryStore{
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		objects: make(map[string]object),
	}
}

func (s *MemoryStore) Store(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: empty key", contracts.ErrBlobStorage)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", contracts.ErrBlobStorage, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = object{contentType: contentType, data: append([]byte(nil), data...)}
	return publicURL(s.baseURL, key), nil
}

func (s *MemoryStore) Remove(ctx context.Context, url string) error {
	key, ok := keyFromURL(s.baseURL, url)
	if !ok {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Open returns a stored file.
func (s *MemoryStore) Open(key string) (data []byte, contentType string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, "", false
	}
	return obj.data, obj.contentType, true
}

// ServeHTTP serves a stored file. The request path is the key, so mount it
// behind http.StripPrefix.
func (s *MemoryStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, contentType, ok := s.Open(strings.TrimPrefix(r.URL.Path, "/"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}

// Len returns the number of stored files.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func publicURL(baseURL, key string) string {
	return baseURL + "/" + key
}

func keyFromURL(baseURL, url string) (string, bool) {
	prefix := baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	return key, key != ""
}
