// Package services holds the application-level orchestration between the
// storage layer and its collaborators.
package services

import (
	"context"
	"time"

	"newsagg-backend/application/ports"
	"newsagg-backend/domain/digest"
	"newsagg-backend/domain/events"
	apperrors "newsagg-backend/pkg/errors"
	"newsagg-backend/pkg/observability"

	"go.uber.org/zap"
)

// DigestService fronts the digest store for API handlers and the
// generation pipeline. Beyond persistence it keeps the user registry's
// last-digest timestamp current and emits lifecycle events; both are
// best-effort and never fail the storage operation that succeeded.
type DigestService struct {
	digests   ports.DigestStore
	users     ports.UserRepository
	publisher ports.EventPublisher
	metrics   *observability.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewDigestService creates a new digest service
func NewDigestService(
	digests ports.DigestStore,
	users ports.UserRepository,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *DigestService {
	return &DigestService{
		digests:   digests,
		users:     users,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Store persists a digest record and returns the storage key
func (s *DigestService) Store(ctx context.Context, userID, digestID string, d digest.Digest, markdown string) (string, error) {
	key, err := s.digests.Store(ctx, userID, digestID, d, markdown)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()

	if s.users != nil {
		if err := s.users.TouchLastDigest(ctx, userID, now); err != nil && !apperrors.IsNotFound(err) {
			s.logger.Warn("Failed to update last digest time",
				zap.String("userID", userID),
				zap.Error(err),
			)
		}
	}

	if s.publisher != nil {
		event := events.NewDigestStored(userID, digestID, key, d.ArticleCount(), now)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish digest stored event",
				zap.String("digestID", digestID),
				zap.Error(err),
			)
		}
	}

	s.metrics.Count(ctx, observability.MetricDigestStored, 1)

	return key, nil
}

// Get retrieves one digest record
func (s *DigestService) Get(ctx context.Context, userID, digestID string) (*digest.Record, error) {
	return s.digests.Get(ctx, userID, digestID)
}

// List pages through a user's digests
func (s *DigestService) List(ctx context.Context, userID string, opts ports.ListOptions) (*digest.Page, error) {
	return s.digests.List(ctx, userID, opts)
}

// Delete removes a digest record
func (s *DigestService) Delete(ctx context.Context, userID, digestID string) error {
	if err := s.digests.Delete(ctx, userID, digestID); err != nil {
		return err
	}

	if s.publisher != nil {
		event := events.NewDigestDeleted(userID, digestID, s.now().UTC())
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish digest deleted event",
				zap.String("digestID", digestID),
				zap.Error(err),
			)
		}
	}

	s.metrics.Count(ctx, observability.MetricDigestDeleted, 1)

	return nil
}
