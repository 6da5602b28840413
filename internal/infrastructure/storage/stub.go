package storage

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	catalogapp "github.com/archerandash/storefront/internal/application/catalog"
)

const defaultStubBaseURL = "http://localhost:8080/uploads"

var _ catalogapp.ImageStorage = (*StubImageStorage)(nil)

// StubImageStorage issues fake upload URLs when no bucket is configured.
// Nothing is stored; deleted keys are remembered so tests can inspect them.
type StubImageStorage struct {
	baseURL string

	mu      sync.Mutex
	deleted []string
}

// NewStubImageStorage creates a stub serving URLs under baseURL
func NewStubImageStorage(baseURL string) *StubImageStorage {
	if baseURL == "" {
		baseURL = defaultStubBaseURL
	}
	return &StubImageStorage{baseURL: strings.TrimRight(baseURL, "/")}
}

// GenerateUploadURL returns a URL that encodes the key and expiry
func (s *StubImageStorage) GenerateUploadURL(_ context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errEmptyKey
	}
	if expiresIn <= 0 {
		expiresIn = defaultPresignExpiration
	}
	expiresAt := time.Now().Add(expiresIn)

	q := url.Values{}
	q.Set("expires", expiresAt.UTC().Format(time.RFC3339))
	q.Set("content_type", contentType)
	return s.baseURL + "/upload/" + storageKey + "?" + q.Encode(), expiresAt, nil
}

// PublicURL returns the URL the object would be served from
func (s *StubImageStorage) PublicURL(storageKey string) string {
	return s.baseURL + "/" + strings.TrimLeft(storageKey, "/")
}

// DeleteObject records the key
func (s *StubImageStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errEmptyKey
	}
	s.mu.Lock()
	s.deleted = append(s.deleted, storageKey)
	s.mu.Unlock()
	return nil
}

// KeyFromURL maps a public URL back to its key
func (s *StubImageStorage) KeyFromURL(imageURL string) (string, bool) {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(imageURL, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(imageURL, prefix)
	return key, key != ""
}

// Deleted returns the keys passed to DeleteObject
func (s *StubImageStorage) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}
