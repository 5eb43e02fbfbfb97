// Package s3 implements the object store port on Amazon S3.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"newsagg-backend/application/ports"
	apperrors "newsagg-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// ObjectStore implements the ObjectStore port using an S3 bucket
type ObjectStore struct {
	client *awss3.Client
	bucket string
	logger *zap.Logger
}

// NewObjectStore creates a new S3-backed object store
func NewObjectStore(client *awss3.Client, bucket string, logger *zap.Logger) ports.ObjectStore {
	return &ObjectStore{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Put writes a blob with attached metadata, overwriting any existing object
func (s *ObjectStore) Put(ctx context.Context, key string, body []byte, metadata map[string]string) error {
	input := &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}
	if len(metadata) > 0 {
		input.Metadata = metadata
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.logger.Error("Failed to put object",
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("failed to put object %q: %w", key, err)
	}

	s.logger.Debug("Stored object",
		zap.String("key", key),
		zap.Int("bytes", len(body)),
	)

	return nil
}

// Get reads a blob and its metadata; a missing key maps to the not-found
// sentinel rather than an error
func (s *ObjectStore) Get(ctx context.Context, key string) (*ports.Object, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, apperrors.NewNotFoundError("object")
		}
		s.logger.Error("Failed to get object",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to get object %q: %w", key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %q: %w", key, err)
	}

	return &ports.Object{
		Body:     body,
		Metadata: out.Metadata,
	}, nil
}

// List pages through keys under a prefix. S3 listings do not carry user
// metadata, so each page issues one HeadObject per key; that keeps listing
// metadata-only without ever reading object bodies.
func (s *ObjectStore) List(ctx context.Context, prefix, cursor string, limit int) (*ports.ObjectPage, error) {
	input := &awss3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	}
	if cursor != "" {
		input.ContinuationToken = aws.String(cursor)
	}
	if limit > 0 {
		input.MaxKeys = aws.Int32(int32(limit))
	}

	out, err := s.client.ListObjectsV2(ctx, input)
	if err != nil {
		s.logger.Error("Failed to list objects",
			zap.String("prefix", prefix),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to list objects under %q: %w", prefix, err)
	}

	page := &ports.ObjectPage{
		Entries:   make([]ports.ObjectEntry, 0, len(out.Contents)),
		Truncated: aws.ToBool(out.IsTruncated),
		Cursor:    aws.ToString(out.NextContinuationToken),
	}

	for _, obj := range out.Contents {
		entry := ports.ObjectEntry{
			Key:          aws.ToString(obj.Key),
			LastModified: aws.ToTime(obj.LastModified),
		}
		entry.Metadata = s.headMetadata(ctx, entry.Key)
		page.Entries = append(page.Entries, entry)
	}

	return page, nil
}

// headMetadata fetches an object's user metadata without its body. A key
// deleted between List and Head just yields nil metadata; callers fall back
// to key-derived summaries.
func (s *ObjectStore) headMetadata(ctx context.Context, key string) map[string]string {
	out, err := s.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Debug("Failed to head object during listing",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil
	}
	return out.Metadata
}

// Delete removes a blob; S3 deletes are idempotent, so a missing key succeeds
func (s *ObjectStore) Delete(ctx context.Context, key string) error {
	if _, err := s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		s.logger.Error("Failed to delete object",
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("failed to delete object %q: %w", key, err)
	}
	return nil
}
