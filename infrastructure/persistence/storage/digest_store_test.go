package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"newsagg-backend/application/ports"
	"newsagg-backend/domain/digest"
	"newsagg-backend/infrastructure/persistence/memory"
	apperrors "newsagg-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubObjectStore returns canned listing pages and errors, for asserting
// passthrough behavior without a real backend.
type stubObjectStore struct {
	ports.ObjectStore
	listPage *ports.ObjectPage
	listErr  error
	putErr   error
}

func (s *stubObjectStore) Put(ctx context.Context, key string, body []byte, metadata map[string]string) error {
	return s.putErr
}

func (s *stubObjectStore) List(ctx context.Context, prefix, cursor string, limit int) (*ports.ObjectPage, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listPage, nil
}

func testDigest() digest.Digest {
	return digest.Digest{
		ID:     "digest-1",
		UserID: "user-1",
		Title:  "Morning Briefing",
		Sections: []digest.Section{
			{
				Topic: "technology",
				Articles: []digest.Article{
					{
						ID:           "a1",
						Title:        "Chip fabs expand",
						Summary:      "Capacity is up across the board.",
						SourceURL:    "https://example.com/chips",
						SourceName:   "Example Wire",
						QualityScore: 0.82,
					},
				},
			},
		},
	}
}

func TestDigestStore_StoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewDigestStore(memory.NewObjectStore(), zap.NewNop())

	key, err := store.Store(ctx, "user-1", "digest-1", testDigest(), "# Morning Briefing")
	require.NoError(t, err)
	assert.Equal(t, "users/user-1/digests/digest-1.json", key)

	record, err := store.Get(ctx, "user-1", "digest-1")
	require.NoError(t, err)
	assert.Equal(t, testDigest(), record.Digest)
	assert.Equal(t, "# Morning Briefing", record.Markdown)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestDigestStore_StoreSetsCreatedAtNotCaller(t *testing.T) {
	ctx := context.Background()
	store := NewDigestStore(memory.NewObjectStore(), zap.NewNop())
	fixed := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	_, err := store.Store(ctx, "user-1", "digest-1", testDigest(), "md")
	require.NoError(t, err)

	record, err := store.Get(ctx, "user-1", "digest-1")
	require.NoError(t, err)
	assert.Equal(t, fixed, record.CreatedAt)
}

func TestDigestStore_StoreOverwritesSilently(t *testing.T) {
	ctx := context.Background()
	store := NewDigestStore(memory.NewObjectStore(), zap.NewNop())

	_, err := store.Store(ctx, "user-1", "digest-1", testDigest(), "first")
	require.NoError(t, err)
	_, err = store.Store(ctx, "user-1", "digest-1", testDigest(), "second")
	require.NoError(t, err)

	record, err := store.Get(ctx, "user-1", "digest-1")
	require.NoError(t, err)
	assert.Equal(t, "second", record.Markdown)
}

func TestDigestStore_GetMissingReturnsNotFound(t *testing.T) {
	store := NewDigestStore(memory.NewObjectStore(), zap.NewNop())

	_, err := store.Get(context.Background(), "user-1", "nonexistent")

	assert.True(t, apperrors.IsNotFound(err))
}

func TestDigestStore_GetCorruptRecordReturnsMalformed(t *testing.T) {
	ctx := context.Background()
	objects := memory.NewObjectStore()
	require.NoError(t, objects.Put(ctx, "users/user-1/digests/bad.json", []byte("{not json"), nil))

	store := NewDigestStore(objects, zap.NewNop())
	_, err := store.Get(ctx, "user-1", "bad")

	assert.True(t, apperrors.IsMalformed(err))
	assert.False(t, apperrors.IsNotFound(err))
}

func TestDigestStore_ListEmptyNamespace(t *testing.T) {
	store := NewDigestStore(memory.NewObjectStore(), zap.NewNop())

	page, err := store.List(context.Background(), "new-user", ports.ListOptions{})
	require.NoError(t, err)

	assert.Empty(t, page.Digests)
	assert.False(t, page.Truncated)
	assert.Empty(t, page.Cursor)
}

func TestDigestStore_ListUsesMetadataOnly(t *testing.T) {
	ctx := context.Background()
	store := NewDigestStore(memory.NewObjectStore(), zap.NewNop())
	fixed := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	_, err := store.Store(ctx, "user-1", "digest-1", testDigest(), "md")
	require.NoError(t, err)
	_, err = store.Store(ctx, "user-1", "digest-2", testDigest(), "md")
	require.NoError(t, err)

	page, err := store.List(ctx, "user-1", ports.ListOptions{})
	require.NoError(t, err)

	require.Len(t, page.Digests, 2)
	assert.Equal(t, "digest-1", page.Digests[0].DigestID)
	assert.Equal(t, "digest-2", page.Digests[1].DigestID)
	assert.Equal(t, fixed.Truncate(time.Second), page.Digests[0].CreatedAt)
}

func TestDigestStore_ListDoesNotCrossUserNamespaces(t *testing.T) {
	ctx := context.Background()
	store := NewDigestStore(memory.NewObjectStore(), zap.NewNop())

	_, err := store.Store(ctx, "user-1", "digest-1", testDigest(), "md")
	require.NoError(t, err)
	_, err = store.Store(ctx, "user-2", "digest-2", testDigest(), "md")
	require.NoError(t, err)

	page, err := store.List(ctx, "user-1", ports.ListOptions{})
	require.NoError(t, err)

	require.Len(t, page.Digests, 1)
	assert.Equal(t, "digest-1", page.Digests[0].DigestID)
}

func TestDigestStore_ListPaginationPassthrough(t *testing.T) {
	stub := &stubObjectStore{
		listPage: &ports.ObjectPage{
			Entries: []ports.ObjectEntry{
				{Key: "users/user-1/digests/digest-1.json", Metadata: map[string]string{"digest-id": "digest-1"}},
				{Key: "users/user-1/digests/digest-2.json", Metadata: map[string]string{"digest-id": "digest-2"}},
			},
			Truncated: true,
			Cursor:    "next-cursor",
		},
	}
	store := NewDigestStore(stub, zap.NewNop())

	page, err := store.List(context.Background(), "user-1", ports.ListOptions{Limit: 2})
	require.NoError(t, err)

	assert.True(t, page.Truncated)
	assert.Equal(t, "next-cursor", page.Cursor)
	assert.Len(t, page.Digests, 2)
}

func TestDigestStore_ListSummaryFallsBackToKey(t *testing.T) {
	stub := &stubObjectStore{
		listPage: &ports.ObjectPage{
			Entries: []ports.ObjectEntry{
				{
					Key:          "users/user-1/digests/2025-06-01%2Fmorning.json",
					LastModified: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
				},
			},
		},
	}
	store := NewDigestStore(stub, zap.NewNop())

	page, err := store.List(context.Background(), "user-1", ports.ListOptions{})
	require.NoError(t, err)

	require.Len(t, page.Digests, 1)
	assert.Equal(t, "2025-06-01/morning", page.Digests[0].DigestID)
	assert.Equal(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), page.Digests[0].CreatedAt)
}

func TestDigestStore_ListPropagatesStoreFailure(t *testing.T) {
	cause := errors.New("connection refused")
	store := NewDigestStore(&stubObjectStore{listErr: cause}, zap.NewNop())

	_, err := store.List(context.Background(), "user-1", ports.ListOptions{})

	assert.ErrorIs(t, err, cause)
}

func TestDigestStore_StorePropagatesStoreFailure(t *testing.T) {
	cause := errors.New("connection refused")
	store := NewDigestStore(&stubObjectStore{putErr: cause}, zap.NewNop())

	_, err := store.Store(context.Background(), "user-1", "digest-1", testDigest(), "md")

	assert.ErrorIs(t, err, cause)
}

func TestDigestStore_DeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewDigestStore(memory.NewObjectStore(), zap.NewNop())

	_, err := store.Store(ctx, "user-1", "digest-1", testDigest(), "md")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "user-1", "digest-1"))
	require.NoError(t, store.Delete(ctx, "user-1", "digest-1"))

	_, err = store.Get(ctx, "user-1", "digest-1")
	assert.True(t, apperrors.IsNotFound(err))
}
