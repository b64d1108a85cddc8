package database

import (
	"context"
	"fmt"

	"folio/models"

	"github.com/google/uuid"
)

// InsertActivity appends an audit record. The caller decides whether a
// failure matters; handlers only log it.
func (db *DB) InsertActivity(ctx context.Context, entry models.ActivityLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	query := `
		INSERT INTO activity_logs (id, action, resource_type, resource_id, user_id, details)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := db.Pool.Exec(ctx, query, entry.ID, entry.Action, entry.ResourceType,
		entry.ResourceID, entry.UserID, entry.Details)
	if err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}

	return nil
}
