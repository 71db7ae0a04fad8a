// Package notify finds candidates worth alerting about a new job
// posting and hands the alerts to a dispatcher. Dispatch failures are
// recorded per recipient; one bad recipient never blocks the rest.
package notify

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentbridge/matchengine/internal/features"
	"github.com/talentbridge/matchengine/internal/scoring"
	"github.com/talentbridge/matchengine/internal/store"
	"github.com/talentbridge/matchengine/internal/types"
)

// Targeting bounds
const (
	DefaultMinScore   = 60
	DefaultMaxNotices = 50

	highPriorityScore = 80
	maxPayloadReasons = 3
)

// Notification priorities
const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// Notification is one job-match alert for one candidate
type Notification struct {
	RecipientID uuid.UUID      `json:"recipient_id"`
	JobID       uuid.UUID      `json:"job_id"`
	JobTitle    string         `json:"job_title"`
	CompanyName string         `json:"company_name"`
	Score       int            `json:"score"`
	Priority    string         `json:"priority"`
	Reasons     []types.Reason `json:"reasons,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Dispatcher delivers notifications to the outside world
type Dispatcher interface {
	Dispatch(ctx context.Context, n Notification) error
}

// Result records one recipient's dispatch outcome
type Result struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	Score       int       `json:"score"`
	Delivered   bool      `json:"delivered"`
	Error       string    `json:"error,omitempty"`
}

// Options tunes one notification run
type Options struct {
	MinScore   int
	MaxNotices int
}

func (o Options) withDefaults() Options {
	if o.MinScore == 0 {
		o.MinScore = DefaultMinScore
	}
	if o.MaxNotices <= 0 {
		o.MaxNotices = DefaultMaxNotices
	}
	return o
}

// Matcher targets and dispatches job-match notifications
type Matcher struct {
	candidates store.CandidateStore
	jobs       store.JobStore
	dispatcher Dispatcher
	engine     *scoring.Engine
	log        *zap.Logger
}

// NewMatcher wires a notification matcher around the match weight
// profile
func NewMatcher(candidates store.CandidateStore, jobs store.JobStore, dispatcher Dispatcher, log *zap.Logger) (*Matcher, error) {
	engine, err := scoring.NewEngine(scoring.MatchProfile())
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Matcher{
		candidates: candidates,
		jobs:       jobs,
		dispatcher: dispatcher,
		engine:     engine,
		log:        log,
	}, nil
}

// NotifyMatching scores the candidate pool against the job, keeps
// candidates at or above the score floor (capped, best first) and
// dispatches one notification each. The returned results hold one
// entry per targeted candidate, including failed deliveries.
func (m *Matcher) NotifyMatching(ctx context.Context, jobID uuid.UUID, opts Options) ([]Result, error) {
	opts = opts.withDefaults()

	job, err := m.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	jobFeatures := features.ExtractJob(job)

	pool, err := m.candidates.QueryCandidates(ctx, store.CandidateFilter{
		Keywords: jobFeatures.Keywords,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}

	type target struct {
		candidateID uuid.UUID
		result      types.MatchResult
	}
	var targets []target
	for i := range pool {
		result := m.engine.Score(features.ExtractCandidate(&pool[i]), jobFeatures)
		if result.Score >= opts.MinScore {
			targets = append(targets, target{candidateID: pool[i].ID, result: result})
		}
	}
	sort.SliceStable(targets, func(i, j int) bool {
		if targets[i].result.Score != targets[j].result.Score {
			return targets[i].result.Score > targets[j].result.Score
		}
		return targets[i].candidateID.String() < targets[j].candidateID.String()
	})
	if len(targets) > opts.MaxNotices {
		targets = targets[:opts.MaxNotices]
	}

	now := time.Now().UTC()
	results := make([]Result, 0, len(targets))
	for _, tg := range targets {
		n := Notification{
			RecipientID: tg.candidateID,
			JobID:       job.ID,
			JobTitle:    job.Title,
			CompanyName: job.CompanyName,
			Score:       tg.result.Score,
			Priority:    priorityFor(tg.result.Score),
			Reasons:     topReasons(tg.result.Reasons),
			CreatedAt:   now,
		}

		res := Result{RecipientID: tg.candidateID, Score: tg.result.Score, Delivered: true}
		if err := m.dispatcher.Dispatch(ctx, n); err != nil {
			res.Delivered = false
			res.Error = err.Error()
			m.log.Warn("notification dispatch failed",
				zap.String("recipient_id", tg.candidateID.String()),
				zap.String("job_id", job.ID.String()),
				zap.Error(err))
		}
		results = append(results, res)
	}

	m.log.Info("job match notifications processed",
		zap.String("job_id", job.ID.String()),
		zap.Int("pool", len(pool)),
		zap.Int("notified", len(results)))
	return results, nil
}

func priorityFor(score int) string {
	if score >= highPriorityScore {
		return PriorityHigh
	}
	return PriorityNormal
}

// topReasons keeps the strongest few reasons for the payload,
// preserving their original order
func topReasons(reasons []types.Reason) []types.Reason {
	if len(reasons) <= maxPayloadReasons {
		return reasons
	}
	return reasons[:maxPayloadReasons]
}
