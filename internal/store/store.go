// Package store provides PostgreSQL-backed persistence for candidate,
// job, recommendation and interaction data, behind narrow interfaces
// so services can be tested against in-memory fakes.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentbridge/matchengine/internal/types"
)

// ErrNotFound is returned when a referenced candidate or job id does
// not exist. Callers surface it directly; it is never retried.
var ErrNotFound = errors.New("not found")

// CandidateFilter narrows a candidate population query. Zero values
// mean "no constraint".
type CandidateFilter struct {
	// Keywords matches candidates whose skill text contains any of
	// the given lower-cased tokens
	Keywords []string
	// IncludeDisabled keeps disabled accounts in the result
	IncludeDisabled bool
	// CreatedSince keeps only candidates registered after the instant
	CreatedSince time.Time
	// ActiveSince keeps only candidates seen after the instant
	ActiveSince time.Time
	// Limit caps the result size; zero means no cap
	Limit int
}

// UserActivity pairs a user with an interaction count, used to sample
// the most active users for system-level accuracy
type UserActivity struct {
	UserID           uuid.UUID
	InteractionCount int
}

// CandidateStore reads raw candidate records
type CandidateStore interface {
	GetCandidate(ctx context.Context, id uuid.UUID) (*types.Candidate, error)
	QueryCandidates(ctx context.Context, filter CandidateFilter) ([]types.Candidate, error)
}

// JobStore reads raw job postings
type JobStore interface {
	GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error)
	ListCompanyJobsSince(ctx context.Context, companyID uuid.UUID, since time.Time, limit int) ([]types.Job, error)
	ListJobsByStatus(ctx context.Context, status string, limit int) ([]types.Job, error)
}

// RecommendationStore persists ranked result sets. Replace guarantees
// at most one active set per (owner, item type, source key):
// the previous set is deleted before the new one is inserted, inside
// one transaction, and concurrent replacements for the same key are
// serialized.
type RecommendationStore interface {
	ReplaceRecommendations(ctx context.Context, ownerID uuid.UUID, itemType, sourceKey string, recs []types.Recommendation) error
	ListActiveRecommendations(ctx context.Context, ownerID uuid.UUID, itemType string, minScore, limit int) ([]types.Recommendation, error)
	ListRecommendationsSince(ctx context.Context, ownerID uuid.UUID, itemType string, since time.Time) ([]types.Recommendation, error)
}

// InteractionLog records and queries user actions against items
type InteractionLog interface {
	RecordInteraction(ctx context.Context, in *types.Interaction) error
	ListInteractions(ctx context.Context, userID uuid.UUID, itemType string, itemIDs []uuid.UUID, since time.Time) ([]types.Interaction, error)
	MostActiveUsers(ctx context.Context, itemType string, since time.Time, limit int) ([]UserActivity, error)
}

// DB wraps a PostgreSQL connection pool and implements all four store
// interfaces
type DB struct {
	pool *pgxpool.Pool

	// replaceLocks serializes recommendation replacement per
	// (owner, itemType, sourceKey) so a delete from one writer never
	// races an insert from another
	replaceMu    sync.Mutex
	replaceLocks map[string]*sync.Mutex
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool, replaceLocks: make(map[string]*sync.Mutex)}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// replaceLock returns the mutex guarding one replacement key
func (db *DB) replaceLock(ownerID uuid.UUID, itemType, sourceKey string) *sync.Mutex {
	key := ownerID.String() + "|" + itemType + "|" + sourceKey
	db.replaceMu.Lock()
	defer db.replaceMu.Unlock()
	mu, ok := db.replaceLocks[key]
	if !ok {
		mu = &sync.Mutex{}
		db.replaceLocks[key] = mu
	}
	return mu
}
