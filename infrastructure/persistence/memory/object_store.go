// Package memory provides an in-memory object store used by tests and
// local development. Listings are strongly consistent and key-ordered,
// which makes pagination deterministic.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"newsagg-backend/application/ports"
	apperrors "newsagg-backend/pkg/errors"
)

type storedObject struct {
	body         []byte
	metadata     map[string]string
	lastModified time.Time
}

// ObjectStore is an in-memory implementation of the ObjectStore port
type ObjectStore struct {
	mu      sync.RWMutex
	objects map[string]storedObject

	// Now supplies object timestamps; tests may pin it.
	Now func() time.Time
}

// NewObjectStore creates a new in-memory object store
func NewObjectStore() *ObjectStore {
	return &ObjectStore{
		objects: make(map[string]storedObject),
		Now:     time.Now,
	}
}

// Put stores a blob, overwriting any existing object at the key
func (s *ObjectStore) Put(ctx context.Context, key string, body []byte, metadata map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[key] = storedObject{
		body:         append([]byte(nil), body...),
		metadata:     copyMetadata(metadata),
		lastModified: s.Now(),
	}
	return nil
}

// Get retrieves a blob; a missing key maps to the not-found sentinel
func (s *ObjectStore) Get(ctx context.Context, key string) (*ports.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, exists := s.objects[key]
	if !exists {
		return nil, apperrors.NewNotFoundError("object")
	}

	return &ports.Object{
		Body:     append([]byte(nil), obj.body...),
		Metadata: copyMetadata(obj.metadata),
	}, nil
}

// List pages through keys under a prefix in lexicographic order. The cursor
// is the last key of the previous page.
func (s *ObjectStore) List(ctx context.Context, prefix, cursor string, limit int) (*ports.ObjectPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matching := make([]string, 0)
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) && (cursor == "" || key > cursor) {
			matching = append(matching, key)
		}
	}
	sort.Strings(matching)

	truncated := false
	if limit > 0 && len(matching) > limit {
		matching = matching[:limit]
		truncated = true
	}

	page := &ports.ObjectPage{
		Entries:   make([]ports.ObjectEntry, 0, len(matching)),
		Truncated: truncated,
	}
	for _, key := range matching {
		obj := s.objects[key]
		page.Entries = append(page.Entries, ports.ObjectEntry{
			Key:          key,
			Metadata:     copyMetadata(obj.metadata),
			LastModified: obj.lastModified,
		})
	}
	if truncated {
		page.Cursor = matching[len(matching)-1]
	}

	return page, nil
}

// Delete removes a blob; deleting a missing key succeeds
func (s *ObjectStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, key)
	return nil
}

// Len reports the number of stored objects, expired or not.
func (s *ObjectStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.objects)
}

func copyMetadata(metadata map[string]string) map[string]string {
	if metadata == nil {
		return nil
	}
	cp := make(map[string]string, len(metadata))
	for k, v := range metadata {
		cp[k] = v
	}
	return cp
}
