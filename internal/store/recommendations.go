package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/talentbridge/matchengine/internal/types"
)

const recommendationColumns = `id, owner_id, item_type, item_id, score,
	confidence, reasons, breakdown, algorithm, model_version, ranking,
	source_key, created_at, expires_at`

func scanRecommendation(row pgx.Row) (*types.Recommendation, error) {
	var r types.Recommendation
	err := row.Scan(
		&r.ID, &r.OwnerID, &r.ItemType, &r.ItemID, &r.Score,
		&r.Confidence, &r.Reasons, &r.Breakdown, &r.Algorithm,
		&r.ModelVersion, &r.Ranking, &r.SourceKey, &r.CreatedAt, &r.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ReplaceRecommendations atomically swaps the active set for one
// (owner, item type, source key): the previous set is deleted and the
// new rows inserted inside a single transaction. Concurrent
// replacements for the same key are serialized so readers never
// observe rows from two generations.
func (db *DB) ReplaceRecommendations(ctx context.Context, ownerID uuid.UUID, itemType, sourceKey string, recs []types.Recommendation) error {
	mu := db.replaceLock(ownerID, itemType, sourceKey)
	mu.Lock()
	defer mu.Unlock()

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM recommendations
		 WHERE owner_id = $1 AND item_type = $2 AND source_key = $3`,
		ownerID, itemType, sourceKey)
	if err != nil {
		return fmt.Errorf("failed to delete previous recommendation set: %w", err)
	}

	for _, r := range recs {
		_, err = tx.Exec(ctx,
			`INSERT INTO recommendations (`+recommendationColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			r.ID, r.OwnerID, r.ItemType, r.ItemID, r.Score,
			r.Confidence, r.Reasons, r.Breakdown, r.Algorithm,
			r.ModelVersion, r.Ranking, r.SourceKey, r.CreatedAt, r.ExpiresAt)
		if err != nil {
			return fmt.Errorf("failed to insert recommendation %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit recommendation set: %w", err)
	}
	return nil
}

// ListActiveRecommendations returns unexpired recommendations for one
// owner, best ranking first
func (db *DB) ListActiveRecommendations(ctx context.Context, ownerID uuid.UUID, itemType string, minScore, limit int) ([]types.Recommendation, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+recommendationColumns+` FROM recommendations
		 WHERE owner_id = $1 AND item_type = $2 AND score >= $3 AND expires_at > now()
		 ORDER BY ranking ASC
		 LIMIT $4`, ownerID, itemType, minScore, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query active recommendations: %w", err)
	}
	defer rows.Close()

	return collectRecommendations(rows)
}

// ListRecommendationsSince returns all recommendations created after
// the given instant, expired or not, for accuracy measurement
func (db *DB) ListRecommendationsSince(ctx context.Context, ownerID uuid.UUID, itemType string, since time.Time) ([]types.Recommendation, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+recommendationColumns+` FROM recommendations
		 WHERE owner_id = $1 AND item_type = $2 AND created_at >= $3
		 ORDER BY created_at DESC`, ownerID, itemType, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendation history: %w", err)
	}
	defer rows.Close()

	return collectRecommendations(rows)
}

func collectRecommendations(rows pgx.Rows) ([]types.Recommendation, error) {
	var out []types.Recommendation
	for rows.Next() {
		r, err := scanRecommendation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recommendations: %w", err)
	}
	return out, nil
}
