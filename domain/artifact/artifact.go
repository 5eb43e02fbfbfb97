// Package artifact defines the ephemeral memoization units cached between
// pipeline runs: search results and parsed article bodies.
package artifact

import (
	"encoding/json"
	"fmt"
	"time"
)

// Type names a cache namespace. The pipeline computes a stable content hash
// for the unit's identity (a query string, a URL) within that namespace.
type Type string

const (
	// TypeSearch caches raw search results keyed by query hash.
	TypeSearch Type = "search"
	// TypeArticles caches parsed article content keyed by URL hash.
	TypeArticles Type = "articles"
)

// Entry is the stored cache envelope. Data is kept as raw JSON so the
// envelope stays payload-agnostic; ExpiresAt is absent for entries without
// a logical TTL.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
	ExpiresAt *time.Time      `json:"expiresAt,omitempty"`
}

// Expired reports whether the entry is logically expired at the given
// instant. Entries without ExpiresAt never expire.
func (e *Entry) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && now.After(*e.ExpiresAt)
}

// Decode unmarshals an entry's payload into a typed value.
func Decode[T any](e *Entry) (T, error) {
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return v, fmt.Errorf("failed to decode cached %T: %w", v, err)
	}
	return v, nil
}
