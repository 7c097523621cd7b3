// Package entity defines the system alert record surfaced on the
// notification feed.
package entity

import "time"

// Alert is one notification row. Fraud alerts reference the flagged
// claim by its claim number; custom alerts carry whatever scope the
// creator set. UserID scopes an alert to one account's feed and is
// never serialized.
type Alert struct {
	ID        string    `db:"id" json:"id"`
	Type      string    `db:"alert_type" json:"type"`
	Severity  string    `db:"severity" json:"severity"`
	Message   string    `db:"message" json:"message"`
	ClaimID   *string   `db:"claim_id" json:"claimId,omitempty"`
	FaskesID  *string   `db:"faskes_id" json:"faskesId,omitempty"`
	UserID    *string   `db:"user_id" json:"-"`
	Read      bool      `db:"read" json:"read"`
	CreatedAt time.Time `db:"created_at" json:"timestamp"`
}
