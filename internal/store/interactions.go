package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talentbridge/matchengine/internal/types"
)

// RecordInteraction appends one user action to the log
func (db *DB) RecordInteraction(ctx context.Context, in *types.Interaction) error {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO interactions (id, user_id, item_type, item_id, action, timestamp, original_score)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		in.ID, in.UserID, in.ItemType, in.ItemID, in.Action, in.Timestamp, in.OriginalScore)
	if err != nil {
		return fmt.Errorf("failed to record interaction: %w", err)
	}
	return nil
}

// ListInteractions returns one user's actions against the given items
// after the given instant. An empty itemIDs slice matches all items.
func (db *DB) ListInteractions(ctx context.Context, userID uuid.UUID, itemType string, itemIDs []uuid.UUID, since time.Time) ([]types.Interaction, error) {
	query := `SELECT id, user_id, item_type, item_id, action, timestamp, original_score
	          FROM interactions
	          WHERE user_id = $1 AND item_type = $2 AND timestamp >= $3`
	args := []any{userID, itemType, since}
	if len(itemIDs) > 0 {
		query += ` AND item_id = ANY($4)`
		args = append(args, itemIDs)
	}
	query += ` ORDER BY timestamp DESC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer rows.Close()

	var out []types.Interaction
	for rows.Next() {
		var in types.Interaction
		err := rows.Scan(&in.ID, &in.UserID, &in.ItemType, &in.ItemID,
			&in.Action, &in.Timestamp, &in.OriginalScore)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interactions: %w", err)
	}
	return out, nil
}

// MostActiveUsers returns the users with the most logged actions for
// an item type after the given instant, busiest first
func (db *DB) MostActiveUsers(ctx context.Context, itemType string, since time.Time, limit int) ([]UserActivity, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT user_id, COUNT(*) AS interactions
		 FROM interactions
		 WHERE item_type = $1 AND timestamp >= $2
		 GROUP BY user_id
		 ORDER BY interactions DESC
		 LIMIT $3`, itemType, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query active users: %w", err)
	}
	defer rows.Close()

	var out []UserActivity
	for rows.Next() {
		var ua UserActivity
		if err := rows.Scan(&ua.UserID, &ua.InteractionCount); err != nil {
			return nil, fmt.Errorf("failed to scan user activity: %w", err)
		}
		out = append(out, ua)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user activity: %w", err)
	}
	return out, nil
}
