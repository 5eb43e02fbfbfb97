package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"newsagg-backend/domain/artifact"
	"newsagg-backend/infrastructure/persistence/memory"
	apperrors "newsagg-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type searchResults struct {
	Query string   `json:"query"`
	URLs  []string `json:"urls"`
}

func TestCacheStore_SetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheStore(memory.NewObjectStore(), nil, zap.NewNop())

	data := searchResults{Query: "chip fabs", URLs: []string{"https://example.com/chips"}}
	require.NoError(t, cache.Set(ctx, artifact.TypeSearch, "query-hash-1", data, 0))

	raw, err := cache.Get(ctx, artifact.TypeSearch, "query-hash-1")
	require.NoError(t, err)

	var got searchResults
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, data, got)
}

func TestCacheStore_GetMissingReturnsNotFound(t *testing.T) {
	cache := NewCacheStore(memory.NewObjectStore(), nil, zap.NewNop())

	_, err := cache.Get(context.Background(), artifact.TypeSearch, "absent")

	assert.True(t, apperrors.IsNotFound(err))
}

func TestCacheStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	objects := memory.NewObjectStore()
	cache := NewCacheStore(objects, nil, zap.NewNop())

	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	now := start
	cache.now = func() time.Time { return now }

	data := searchResults{Query: "chip fabs"}
	require.NoError(t, cache.Set(ctx, artifact.TypeSearch, "query-hash-1", data, time.Hour))

	// Before the boundary the payload comes back unchanged.
	now = start.Add(59 * time.Minute)
	raw, err := cache.Get(ctx, artifact.TypeSearch, "query-hash-1")
	require.NoError(t, err)
	var got searchResults
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, data, got)

	// Past the boundary the entry reads as absent.
	now = start.Add(time.Hour + time.Second)
	_, err = cache.Get(ctx, artifact.TypeSearch, "query-hash-1")
	assert.True(t, apperrors.IsNotFound(err))

	// Expiry is logical: the physical object stays in the store.
	assert.Equal(t, 1, objects.Len())
}

func TestCacheStore_NoTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheStore(memory.NewObjectStore(), nil, zap.NewNop())

	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, artifact.TypeArticles, "url-hash-1", "parsed body", 0))

	now = now.AddDate(1, 0, 0)
	raw, err := cache.Get(ctx, artifact.TypeArticles, "url-hash-1")
	require.NoError(t, err)

	var body string
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "parsed body", body)
}

func TestCacheStore_ExpiresAtMirroredIntoMetadata(t *testing.T) {
	ctx := context.Background()
	objects := memory.NewObjectStore()
	cache := NewCacheStore(objects, nil, zap.NewNop())

	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return start }

	require.NoError(t, cache.Set(ctx, artifact.TypeSearch, "query-hash-1", "hits", time.Hour))

	obj, err := objects.Get(ctx, "cache/search/query-hash-1.json")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01T09:00:00Z", obj.Metadata["expires-at"])
	assert.Equal(t, "search", obj.Metadata["artifact-type"])
}

func TestCacheStore_TypeNamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheStore(memory.NewObjectStore(), nil, zap.NewNop())

	require.NoError(t, cache.Set(ctx, artifact.TypeSearch, "shared-hash", "search data", 0))

	_, err := cache.Get(ctx, artifact.TypeArticles, "shared-hash")

	assert.True(t, apperrors.IsNotFound(err))
}

func TestCacheStore_CorruptEntryReturnsMalformed(t *testing.T) {
	ctx := context.Background()
	objects := memory.NewObjectStore()
	require.NoError(t, objects.Put(ctx, "cache/search/bad.json", []byte("{not json"), nil))

	cache := NewCacheStore(objects, nil, zap.NewNop())
	_, err := cache.Get(ctx, artifact.TypeSearch, "bad")

	assert.True(t, apperrors.IsMalformed(err))
}

func TestCacheStore_DeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheStore(memory.NewObjectStore(), nil, zap.NewNop())

	require.NoError(t, cache.Set(ctx, artifact.TypeSearch, "query-hash-1", "hits", 0))

	require.NoError(t, cache.Delete(ctx, artifact.TypeSearch, "query-hash-1"))
	require.NoError(t, cache.Delete(ctx, artifact.TypeSearch, "query-hash-1"))
}

func TestArtifactDecode_TypedAccess(t *testing.T) {
	entry := &artifact.Entry{Data: json.RawMessage(`{"query":"q","urls":["u"]}`)}

	got, err := artifact.Decode[searchResults](entry)
	require.NoError(t, err)
	assert.Equal(t, searchResults{Query: "q", URLs: []string{"u"}}, got)
}
