package storage

import (
	"context"
	"encoding/json"
	"time"

	"newsagg-backend/application/ports"
	"newsagg-backend/domain/artifact"
	"newsagg-backend/infrastructure/persistence/keys"
	apperrors "newsagg-backend/pkg/errors"
	"newsagg-backend/pkg/observability"

	"go.uber.org/zap"
)

// metaExpiresAt mirrors the entry's logical expiry into object metadata as
// RFC3339 so operators can inspect it without reading bodies.
const metaExpiresAt = "expires-at"

// CacheStore memoizes intermediate pipeline artifacts in the object store.
// Expiry is a read-time predicate only: expired objects stay in place for
// the bucket's own retention policy, so this layer needs no sweeper.
type CacheStore struct {
	store   ports.ObjectStore
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewCacheStore creates a new cache store
func NewCacheStore(store ports.ObjectStore, metrics *observability.Metrics, logger *zap.Logger) *CacheStore {
	return &CacheStore{
		store:   store,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Set serializes and writes a cache entry. A positive ttl sets the logical
// expiry; ttl <= 0 stores the entry without one.
func (s *CacheStore) Set(ctx context.Context, artifactType artifact.Type, hash string, data any, ttl time.Duration) error {
	key := keys.CacheKey(artifactType, hash)
	createdAt := s.now().UTC()

	payload, err := json.Marshal(data)
	if err != nil {
		return apperrors.NewInternalError("failed to serialize cache payload", err)
	}

	entry := artifact.Entry{
		Data:      payload,
		CreatedAt: createdAt,
	}

	metadata := map[string]string{
		"artifact-type": string(artifactType),
	}
	if ttl > 0 {
		expiresAt := createdAt.Add(ttl)
		entry.ExpiresAt = &expiresAt
		metadata[metaExpiresAt] = expiresAt.Format(time.RFC3339)
	}

	body, err := json.Marshal(entry)
	if err != nil {
		return apperrors.NewInternalError("failed to serialize cache entry", err)
	}

	if err := s.store.Put(ctx, key, body, metadata); err != nil {
		return err
	}

	s.logger.Debug("Cached artifact",
		zap.String("type", string(artifactType)),
		zap.String("hash", hash),
		zap.Duration("ttl", ttl),
	)

	return nil
}

// Get reads a cache entry's payload. Missing and logically expired entries
// both yield the not-found sentinel; corrupt entries yield a malformed
// error so schema drift never masquerades as a cache miss.
func (s *CacheStore) Get(ctx context.Context, artifactType artifact.Type, hash string) (json.RawMessage, error) {
	key := keys.CacheKey(artifactType, hash)

	obj, err := s.store.Get(ctx, key)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.metrics.Count(ctx, observability.MetricCacheMiss, 1)
			return nil, apperrors.NewNotFoundError("cache entry")
		}
		return nil, err
	}

	var entry artifact.Entry
	if err := json.Unmarshal(obj.Body, &entry); err != nil {
		s.logger.Error("Stored cache entry failed to deserialize",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, apperrors.NewMalformedError("cache entry", err)
	}

	if entry.Expired(s.now()) {
		// The physical object is left for the store's retention policy.
		s.logger.Debug("Cache entry logically expired",
			zap.String("key", key),
			zap.Timep("expiresAt", entry.ExpiresAt),
		)
		s.metrics.Count(ctx, observability.MetricCacheExpired, 1)
		return nil, apperrors.NewNotFoundError("cache entry")
	}

	s.metrics.Count(ctx, observability.MetricCacheHit, 1)
	return entry.Data, nil
}

// Delete removes a cache entry; deleting a missing entry succeeds
func (s *CacheStore) Delete(ctx context.Context, artifactType artifact.Type, hash string) error {
	return s.store.Delete(ctx, keys.CacheKey(artifactType, hash))
}

var _ ports.CacheStore = (*CacheStore)(nil)
