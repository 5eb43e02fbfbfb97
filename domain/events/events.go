// Package events defines the domain events emitted by the digest storage
// layer for downstream consumers (delivery, analytics).
package events

import (
	"time"

	"github.com/google/uuid"
)

// Source identifies this service on the event bus.
const Source = "newsagg.storage"

// DomainEvent is the base interface for all domain events.
// Events represent something that has happened in the past.
type DomainEvent interface {
	GetEventID() string
	GetEventType() string
	GetUserID() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) GetEventID() string       { return e.EventID }
func (e BaseEvent) GetEventType() string     { return e.EventType }
func (e BaseEvent) GetUserID() string        { return e.UserID }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// DigestStored is raised after a digest record is persisted
type DigestStored struct {
	BaseEvent
	DigestID     string `json:"digest_id"`
	Key          string `json:"key"`
	ArticleCount int    `json:"article_count"`
}

// NewDigestStored creates a DigestStored event
func NewDigestStored(userID, digestID, key string, articleCount int, timestamp time.Time) DigestStored {
	return DigestStored{
		BaseEvent: BaseEvent{
			EventID:   uuid.NewString(),
			EventType: "digest.stored",
			UserID:    userID,
			Timestamp: timestamp,
		},
		DigestID:     digestID,
		Key:          key,
		ArticleCount: articleCount,
	}
}

// DigestDeleted is raised after a digest record is removed
type DigestDeleted struct {
	BaseEvent
	DigestID string `json:"digest_id"`
}

// NewDigestDeleted creates a DigestDeleted event
func NewDigestDeleted(userID, digestID string, timestamp time.Time) DigestDeleted {
	return DigestDeleted{
		BaseEvent: BaseEvent{
			EventID:   uuid.NewString(),
			EventType: "digest.deleted",
			UserID:    userID,
			Timestamp: timestamp,
		},
		DigestID: digestID,
	}
}
