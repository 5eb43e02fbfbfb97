// Package digest defines the structured digest model produced by the
// aggregation pipeline and persisted by the storage layer.
package digest

import "time"

// BiasDirection is the detected political lean of an article.
type BiasDirection string

const (
	BiasLeft        BiasDirection = "left"
	BiasCenterLeft  BiasDirection = "center_left"
	BiasCenter      BiasDirection = "center"
	BiasCenterRight BiasDirection = "center_right"
	BiasRight       BiasDirection = "right"
	BiasUnknown     BiasDirection = "unknown"
)

// Article is a single analyzed article inside a digest section.
type Article struct {
	ID             string        `json:"id" validate:"required"`
	Title          string        `json:"title" validate:"required"`
	Summary        string        `json:"summary"`
	SourceURL      string        `json:"source_url" validate:"omitempty,url"`
	SourceName     string        `json:"source_name"`
	QualityScore   float64       `json:"quality_score"`
	Topics         []string      `json:"topics,omitempty"`
	BiasDirection  BiasDirection `json:"bias_direction,omitempty"`
	BiasConfidence float64       `json:"bias_confidence,omitempty"`
}

// Section groups the articles of one topic, in pipeline order.
type Section struct {
	Topic    string    `json:"topic" validate:"required"`
	Articles []Article `json:"articles"`
}

// Digest is one generated news digest for a user. The storage layer treats
// it as an opaque serializable payload; the pipeline owns its semantics.
type Digest struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Title    string    `json:"title" validate:"required"`
	Subtitle string    `json:"subtitle,omitempty"`
	Sections []Section `json:"sections"`
}

// ArticleCount returns the number of articles across all sections.
func (d *Digest) ArticleCount() int {
	count := 0
	for _, s := range d.Sections {
		count += len(s.Articles)
	}
	return count
}

// AverageQuality returns the mean quality score across all articles,
// or 0 for an empty digest.
func (d *Digest) AverageQuality() float64 {
	total := 0.0
	count := 0
	for _, s := range d.Sections {
		for _, a := range s.Articles {
			total += a.QualityScore
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// Topics returns the section topics in order.
func (d *Digest) Topics() []string {
	topics := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		topics = append(topics, s.Topic)
	}
	return topics
}

// Record is the persisted unit for one generated digest: the structured
// content plus its rendered markdown, stamped at write time by the store.
type Record struct {
	Digest    Digest    `json:"digest"`
	Markdown  string    `json:"markdown"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary is a listing projection built from store metadata alone,
// without reading the record body.
type Summary struct {
	DigestID  string    `json:"digest_id"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"created_at"`
}

// Page is one page of a user's digest listing. Cursor is the opaque
// continuation token of the underlying store, present only when Truncated.
type Page struct {
	Digests   []Summary `json:"digests"`
	Truncated bool      `json:"truncated"`
	Cursor    string    `json:"cursor,omitempty"`
}
