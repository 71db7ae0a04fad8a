// Package memstore provides in-memory implementations of the store
// interfaces for tests and local development.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talentbridge/matchengine/internal/store"
	"github.com/talentbridge/matchengine/internal/types"
)

// Store holds everything in process memory. Safe for concurrent use.
type Store struct {
	mu              sync.RWMutex
	candidates      map[uuid.UUID]types.Candidate
	jobs            map[uuid.UUID]types.Job
	recommendations []types.Recommendation
	interactions    []types.Interaction
}

// New returns an empty store
func New() *Store {
	return &Store{
		candidates: make(map[uuid.UUID]types.Candidate),
		jobs:       make(map[uuid.UUID]types.Job),
	}
}

// AddCandidate registers a candidate record
func (s *Store) AddCandidate(c types.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[c.ID] = c
}

// AddJob registers a job posting
func (s *Store) AddJob(j types.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[j.ID] = j
}

// GetCandidate implements store.CandidateStore
func (s *Store) GetCandidate(_ context.Context, id uuid.UUID) (*types.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.candidates[id]
	if !ok {
		return nil, fmt.Errorf("candidate %s: %w", id, store.ErrNotFound)
	}
	return &c, nil
}

// QueryCandidates implements store.CandidateStore
func (s *Store) QueryCandidates(_ context.Context, filter store.CandidateFilter) ([]types.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Candidate
	for _, c := range s.candidates {
		if c.AccountDisabled && !filter.IncludeDisabled {
			continue
		}
		if !filter.CreatedSince.IsZero() && c.CreatedAt.Before(filter.CreatedSince) {
			continue
		}
		if !filter.ActiveSince.IsZero() && c.LastLogin.Before(filter.ActiveSince) {
			continue
		}
		if len(filter.Keywords) > 0 && !matchesKeywords(&c, filter.Keywords) {
			continue
		}
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func matchesKeywords(c *types.Candidate, keywords []string) bool {
	var b strings.Builder
	for _, s := range c.ComputerSkills {
		b.WriteString(strings.ToLower(s.Skill))
		b.WriteByte(' ')
	}
	for _, s := range c.SoftwareSkills {
		b.WriteString(strings.ToLower(s.Software))
		b.WriteByte(' ')
	}
	for _, s := range c.OtherSkills {
		b.WriteString(strings.ToLower(s))
		b.WriteByte(' ')
	}
	text := b.String()
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// GetJob implements store.JobStore
func (s *Store) GetJob(_ context.Context, id uuid.UUID) (*types.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job %s: %w", id, store.ErrNotFound)
	}
	return &j, nil
}

// ListCompanyJobsSince implements store.JobStore
func (s *Store) ListCompanyJobsSince(_ context.Context, companyID uuid.UUID, since time.Time, limit int) ([]types.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Job
	for _, j := range s.jobs {
		if j.CompanyID == companyID && !j.CreatedAt.Before(since) {
			out = append(out, j)
		}
	}
	sortJobsNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListJobsByStatus implements store.JobStore
func (s *Store) ListJobsByStatus(_ context.Context, status string, limit int) ([]types.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Job
	for _, j := range s.jobs {
		if j.Status == status {
			out = append(out, j)
		}
	}
	sortJobsNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortJobsNewestFirst(jobs []types.Job) {
	sort.Slice(jobs, func(i, j int) bool {
		if !jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
		}
		return jobs[i].ID.String() < jobs[j].ID.String()
	})
}

// ReplaceRecommendations implements store.RecommendationStore
func (s *Store) ReplaceRecommendations(_ context.Context, ownerID uuid.UUID, itemType, sourceKey string, recs []types.Recommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.recommendations[:0]
	for _, r := range s.recommendations {
		if r.OwnerID == ownerID && r.ItemType == itemType && r.SourceKey == sourceKey {
			continue
		}
		kept = append(kept, r)
	}
	s.recommendations = append(kept, recs...)
	return nil
}

// ListActiveRecommendations implements store.RecommendationStore
func (s *Store) ListActiveRecommendations(_ context.Context, ownerID uuid.UUID, itemType string, minScore, limit int) ([]types.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	var out []types.Recommendation
	for _, r := range s.recommendations {
		if r.OwnerID != ownerID || r.ItemType != itemType {
			continue
		}
		if r.Score < minScore || !r.ExpiresAt.After(now) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ranking < out[j].Ranking })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListRecommendationsSince implements store.RecommendationStore
func (s *Store) ListRecommendationsSince(_ context.Context, ownerID uuid.UUID, itemType string, since time.Time) ([]types.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Recommendation
	for _, r := range s.recommendations {
		if r.OwnerID == ownerID && r.ItemType == itemType && !r.CreatedAt.Before(since) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// RecordInteraction implements store.InteractionLog
func (s *Store) RecordInteraction(_ context.Context, in *types.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}
	s.interactions = append(s.interactions, *in)
	return nil
}

// ListInteractions implements store.InteractionLog
func (s *Store) ListInteractions(_ context.Context, userID uuid.UUID, itemType string, itemIDs []uuid.UUID, since time.Time) ([]types.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}

	var out []types.Interaction
	for _, in := range s.interactions {
		if in.UserID != userID || in.ItemType != itemType || in.Timestamp.Before(since) {
			continue
		}
		if len(wanted) > 0 && !wanted[in.ItemID] {
			continue
		}
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// MostActiveUsers implements store.InteractionLog
func (s *Store) MostActiveUsers(_ context.Context, itemType string, since time.Time, limit int) ([]store.UserActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[uuid.UUID]int)
	for _, in := range s.interactions {
		if in.ItemType == itemType && !in.Timestamp.Before(since) {
			counts[in.UserID]++
		}
	}

	out := make([]store.UserActivity, 0, len(counts))
	for id, n := range counts {
		out = append(out, store.UserActivity{UserID: id, InteractionCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].InteractionCount != out[j].InteractionCount {
			return out[i].InteractionCount > out[j].InteractionCount
		}
		return out[i].UserID.String() < out[j].UserID.String()
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
