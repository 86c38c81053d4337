// internal/repository/dispatch_repository.go
package repository

import (
	"database/sql"
	"time"

	"github.com/cosmos-order/trial-engine/internal/model"
)

// DispatchLog records every campaign send attempt. The engine itself is
// in-memory; the log is the only persisted surface.
type DispatchLog interface {
	Create(rec *model.DispatchRecord) error
	UpdateStatus(id, status, lastError string) error
	GetByID(id string) (*model.DispatchRecord, error)
	CountByStatus(campaignID string) (map[string]int, error)
}

// PostgresDispatchLog is the lib/pq backed implementation.
type PostgresDispatchLog struct {
	DB *sql.DB
}

// Create inserts a new dispatch record and stamps created/updated times.
func (r *PostgresDispatchLog) Create(rec *model.DispatchRecord) error {
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	query := `
        INSERT INTO dispatch_log
        (id, invitation_id, campaign_id, channel, status, rendered_content, last_error, retry_count, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	_, err := r.DB.Exec(
		query,
		rec.ID,
		rec.InvitationID,
		rec.CampaignID,
		rec.Channel,
		rec.Status,
		rec.RenderedContent,
		rec.LastError,
		rec.RetryCount,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

// UpdateStatus updates status and last_error, bumping retry_count on failure.
func (r *PostgresDispatchLog) UpdateStatus(id, status, lastError string) error {
	query := `
        UPDATE dispatch_log
        SET status=$1,
            last_error=$2,
            retry_count=retry_count + CASE WHEN $1='failed' THEN 1 ELSE 0 END,
            updated_at=NOW()
        WHERE id=$3
    `
	_, err := r.DB.Exec(query, status, lastError, id)
	return err
}

// GetByID fetches a dispatch record by its ID
func (r *PostgresDispatchLog) GetByID(id string) (*model.DispatchRecord, error) {
	query := `
        SELECT id, invitation_id, campaign_id, channel, status, rendered_content, last_error, retry_count, created_at, updated_at
        FROM dispatch_log
        WHERE id=$1
    `
	var rec model.DispatchRecord
	err := r.DB.QueryRow(query, id).Scan(
		&rec.ID,
		&rec.InvitationID,
		&rec.CampaignID,
		&rec.Channel,
		&rec.Status,
		&rec.RenderedContent,
		&rec.LastError,
		&rec.RetryCount,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// CountByStatus returns dispatch counts per status for one campaign.
func (r *PostgresDispatchLog) CountByStatus(campaignID string) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM dispatch_log WHERE campaign_id=$1 GROUP BY status`
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{"pending": 0, "queued": 0, "sent": 0, "failed": 0, "skipped": 0}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

var _ DispatchLog = (*PostgresDispatchLog)(nil)

// NoopDispatchLog is used when no database is configured; the engine
// runs fully in-memory and dispatch history is not retained.
type NoopDispatchLog struct{}

func (NoopDispatchLog) Create(*model.DispatchRecord) error { return nil }

func (NoopDispatchLog) UpdateStatus(_, _, _ string) error { return nil }

func (NoopDispatchLog) GetByID(string) (*model.DispatchRecord, error) { return nil, nil }
func (NoopDispatchLog) CountByStatus(string) (map[string]int, error) {
	return map[string]int{}, nil
}

var _ DispatchLog = NoopDispatchLog{}
