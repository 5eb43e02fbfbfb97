package ports

import (
	"context"
	"encoding/json"
	"time"

	"newsagg-backend/domain/artifact"
	"newsagg-backend/domain/digest"
	"newsagg-backend/domain/events"
	"newsagg-backend/domain/user"
)

// Object is one stored blob plus the metadata attached at write time.
type Object struct {
	Body     []byte
	Metadata map[string]string
}

// ObjectEntry is one key in a listing, carried with its metadata and
// last-modified timestamp so callers can build summaries without a read.
type ObjectEntry struct {
	Key          string
	Metadata     map[string]string
	LastModified time.Time
}

// ObjectPage is one page of a prefix listing. Cursor is the store's opaque
// continuation token, set only when Truncated.
type ObjectPage struct {
	Entries   []ObjectEntry
	Truncated bool
	Cursor    string
}

// ObjectStore is the narrow interface onto the durable key-value blob store.
// This is a port in hexagonal architecture - the storage layer doesn't know
// about the implementation. Listings may be eventually consistent for
// freshly written keys; Delete of a missing key is not an error.
type ObjectStore interface {
	// Put writes a blob with optional attached metadata, overwriting any
	// existing object at the key.
	Put(ctx context.Context, key string, body []byte, metadata map[string]string) error

	// Get reads a blob. A missing key returns errors.ErrNotFound.
	Get(ctx context.Context, key string) (*Object, error)

	// List pages through keys under a prefix. An empty cursor starts from
	// the beginning; limit <= 0 uses the store default.
	List(ctx context.Context, prefix, cursor string, limit int) (*ObjectPage, error)

	// Delete removes a blob; deleting a missing key succeeds.
	Delete(ctx context.Context, key string) error
}

// ListOptions carries the pagination inputs of a digest listing.
type ListOptions struct {
	Limit  int
	Cursor string
}

// DigestStore persists generated digest records per user.
type DigestStore interface {
	// Store writes a digest record and returns the derived storage key.
	// Writing the same (userID, digestID) pair again overwrites silently.
	Store(ctx context.Context, userID, digestID string, d digest.Digest, markdown string) (string, error)

	// Get retrieves a digest record. A missing record returns
	// errors.ErrNotFound; a corrupt payload returns a malformed-record error.
	Get(ctx context.Context, userID, digestID string) (*digest.Record, error)

	// List pages through a user's digests using store metadata only.
	List(ctx context.Context, userID string, opts ListOptions) (*digest.Page, error)

	// Delete removes a digest record; idempotent.
	Delete(ctx context.Context, userID, digestID string) error
}

// CacheStore memoizes intermediate pipeline artifacts with optional
// read-time TTL expiry.
type CacheStore interface {
	// Set stores a payload under (artifactType, hash). A positive ttl sets
	// the logical expiry; ttl <= 0 stores without one.
	Set(ctx context.Context, artifactType artifact.Type, hash string, data any, ttl time.Duration) error

	// Get retrieves a live cache entry's payload. Missing and logically
	// expired entries both return errors.ErrNotFound; expired objects are
	// left in place for the store's own retention policy.
	Get(ctx context.Context, artifactType artifact.Type, hash string) (json.RawMessage, error)

	// Delete removes a cache entry; idempotent.
	Delete(ctx context.Context, artifactType artifact.Type, hash string) error
}

// UserRepository persists registered accounts.
type UserRepository interface {
	// Save persists a user (create or update)
	Save(ctx context.Context, u *user.User) error

	// GetByID retrieves a user by ID; errors.ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*user.User, error)

	// TouchLastDigest records the completion time of a user's latest digest.
	TouchLastDigest(ctx context.Context, id string, at time.Time) error

	// Delete removes a user; idempotent.
	Delete(ctx context.Context, id string) error
}

// EventPublisher pushes domain events to the event bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
