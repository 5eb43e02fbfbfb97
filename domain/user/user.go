// Package user models the registered accounts digests are generated for.
package user

import "time"

// SubscriptionTier controls digest frequency and topic limits.
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPremium SubscriptionTier = "premium"
)

// User is a registered account. Preferences is the raw JSON preference
// document edited by the UI; this layer never interprets it.
type User struct {
	ID               string           `json:"id"`
	Email            string           `json:"email"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier"`
	Preferences      string           `json:"preferences_json"`
	CreatedAt        time.Time        `json:"created_at"`
	LastDigestAt     *time.Time       `json:"last_digest_at,omitempty"`
}
