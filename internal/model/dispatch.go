// internal/model/dispatch.go
package model

import "time"

// DispatchRecord is one row in the dispatch log, written for every
// campaign send attempt.
type DispatchRecord struct {
	ID              string    `db:"id" json:"id"`
	InvitationID    string    `db:"invitation_id" json:"invitation_id"`
	CampaignID      string    `db:"campaign_id" json:"campaign_id"`
	Channel         string    `db:"channel" json:"channel"`
	Status          string    `db:"status" json:"status"` // pending, queued, sent, failed, skipped
	RenderedContent string    `db:"rendered_content" json:"rendered_content"`
	LastError       string    `db:"last_error,omitempty" json:"last_error,omitempty"`
	RetryCount      int       `db:"retry_count" json:"retry_count"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
