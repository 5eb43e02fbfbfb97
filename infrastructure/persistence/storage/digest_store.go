// Package storage implements the digest and cache stores on top of the
// object store port. Both are stateless: every call maps to one or two
// store operations, with no locking and no retries.
package storage

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"newsagg-backend/application/ports"
	"newsagg-backend/domain/digest"
	"newsagg-backend/infrastructure/persistence/keys"
	apperrors "newsagg-backend/pkg/errors"

	"go.uber.org/zap"
)

// Metadata keys attached to stored objects. Lowercase-hyphen form because
// S3 lowercases user metadata keys.
const (
	metaDigestID  = "digest-id"
	metaCreatedAt = "created-at"
)

// DigestStore persists digest records in the object store, one JSON
// document per (userID, digestID) pair
type DigestStore struct {
	store  ports.ObjectStore
	logger *zap.Logger
	now    func() time.Time
}

// NewDigestStore creates a new digest store
func NewDigestStore(store ports.ObjectStore, logger *zap.Logger) *DigestStore {
	return &DigestStore{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Store serializes and writes a digest record, returning the derived key.
// An existing record at the same key is silently overwritten; concurrent
// writers are last-writer-wins at the store's own granularity.
func (s *DigestStore) Store(ctx context.Context, userID, digestID string, d digest.Digest, markdown string) (string, error) {
	key := keys.DigestKey(userID, digestID)
	createdAt := s.now().UTC()

	record := digest.Record{
		Digest:    d,
		Markdown:  markdown,
		CreatedAt: createdAt,
	}

	body, err := json.Marshal(record)
	if err != nil {
		return "", apperrors.NewInternalError("failed to serialize digest record", err)
	}

	metadata := map[string]string{
		metaDigestID:  digestID,
		metaCreatedAt: createdAt.Format(time.RFC3339),
	}

	if err := s.store.Put(ctx, key, body, metadata); err != nil {
		return "", err
	}

	s.logger.Info("Stored digest",
		zap.String("userID", userID),
		zap.String("digestID", digestID),
		zap.String("key", key),
		zap.Int("articleCount", d.ArticleCount()),
	)

	return key, nil
}

// Get reads a digest record. A missing key yields the not-found sentinel;
// a payload that no longer deserializes yields a malformed-record error.
func (s *DigestStore) Get(ctx context.Context, userID, digestID string) (*digest.Record, error) {
	key := keys.DigestKey(userID, digestID)

	obj, err := s.store.Get(ctx, key)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("digest")
		}
		return nil, err
	}

	var record digest.Record
	if err := json.Unmarshal(obj.Body, &record); err != nil {
		s.logger.Error("Stored digest record failed to deserialize",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, apperrors.NewMalformedError("digest record", err)
	}

	return &record, nil
}

// List pages through a user's digests using listing metadata only, never
// reading record bodies. The store's pagination semantics pass through:
// the returned cursor is the store's own continuation token, resubmitted
// verbatim by the caller to continue.
func (s *DigestStore) List(ctx context.Context, userID string, opts ports.ListOptions) (*digest.Page, error) {
	prefix := keys.DigestPrefix(userID)

	objPage, err := s.store.List(ctx, prefix, opts.Cursor, opts.Limit)
	if err != nil {
		return nil, err
	}

	page := &digest.Page{
		Digests:   make([]digest.Summary, 0, len(objPage.Entries)),
		Truncated: objPage.Truncated,
		Cursor:    objPage.Cursor,
	}

	for _, entry := range objPage.Entries {
		page.Digests = append(page.Digests, summaryFromEntry(prefix, entry))
	}

	return page, nil
}

// Delete removes a digest record; deleting a missing record succeeds
func (s *DigestStore) Delete(ctx context.Context, userID, digestID string) error {
	key := keys.DigestKey(userID, digestID)

	if err := s.store.Delete(ctx, key); err != nil {
		return err
	}

	s.logger.Info("Deleted digest",
		zap.String("userID", userID),
		zap.String("digestID", digestID),
	)

	return nil
}

// summaryFromEntry builds a listing summary from one listed key. Metadata
// written at store time is preferred; entries missing it (written by an
// older deployment, or a head race) fall back to the key itself and the
// store's last-modified timestamp.
func summaryFromEntry(prefix string, entry ports.ObjectEntry) digest.Summary {
	summary := digest.Summary{
		Key:       entry.Key,
		CreatedAt: entry.LastModified,
	}

	if id, ok := entry.Metadata[metaDigestID]; ok && id != "" {
		summary.DigestID = id
	} else {
		summary.DigestID = digestIDFromKey(prefix, entry.Key)
	}

	if raw, ok := entry.Metadata[metaCreatedAt]; ok {
		if createdAt, err := time.Parse(time.RFC3339, raw); err == nil {
			summary.CreatedAt = createdAt
		}
	}

	return summary
}

// digestIDFromKey inverts the key derivation for one listed key.
func digestIDFromKey(prefix, key string) string {
	escaped := strings.TrimSuffix(strings.TrimPrefix(key, prefix), ".json")
	id, err := url.PathUnescape(escaped)
	if err != nil {
		return escaped
	}
	return id
}

var _ ports.DigestStore = (*DigestStore)(nil)
