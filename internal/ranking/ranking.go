// Package ranking scores a candidate population against one job
// posting, orders the results deterministically and persists them as
// a replaceable recommendation set.
package ranking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/talentbridge/matchengine/internal/analysis"
	"github.com/talentbridge/matchengine/internal/features"
	"github.com/talentbridge/matchengine/internal/scoring"
	"github.com/talentbridge/matchengine/internal/store"
	"github.com/talentbridge/matchengine/internal/types"
)

// Defaults applied when an Options field is zero
const (
	DefaultMinScore     = 30
	DefaultLimit        = 50
	DefaultConcurrency  = 8
	DefaultModelVersion = "v2.1"
)

// Options tunes one ranking run
type Options struct {
	// MinScore drops candidates scoring below the floor
	MinScore int
	// Limit caps the ranked result size
	Limit int
	// Concurrency bounds the scoring worker pool
	Concurrency int
	// ModelVersion is stamped on persisted recommendations
	ModelVersion string
	// Persist controls whether the run replaces the stored set
	Persist bool
}

func (o Options) withDefaults() Options {
	if o.MinScore == 0 {
		o.MinScore = DefaultMinScore
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.ModelVersion == "" {
		o.ModelVersion = DefaultModelVersion
	}
	return o
}

// RankedCandidate is one scored entry in a ranking run
type RankedCandidate struct {
	CandidateID uuid.UUID         `json:"candidate_id"`
	Name        string            `json:"name"`
	Ranking     int               `json:"ranking"`
	Result      types.MatchResult `json:"result"`

	features types.CandidateFeatures
}

// Service ranks candidates for job postings
type Service struct {
	candidates store.CandidateStore
	jobs       store.JobStore
	recs       store.RecommendationStore
	engine     *scoring.Engine
	log        *zap.Logger
}

// NewService wires a ranking service. The engine decides the weight
// profile; pass one built from scoring.RankingProfile for the
// standard behavior.
func NewService(candidates store.CandidateStore, jobs store.JobStore, recs store.RecommendationStore, engine *scoring.Engine, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		candidates: candidates,
		jobs:       jobs,
		recs:       recs,
		engine:     engine,
		log:        log,
	}
}

// RankCandidates scores every enabled candidate against the job,
// filters by the score floor, orders by score descending (candidate
// id ascending on ties) and caps the result. With Persist set, the
// ranked set replaces the job's stored recommendations.
func (s *Service) RankCandidates(ctx context.Context, jobID uuid.UUID, opts Options) ([]RankedCandidate, error) {
	opts = opts.withDefaults()

	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	jobFeatures := features.ExtractJob(job)

	population, err := s.candidates.QueryCandidates(ctx, store.CandidateFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate population: %w", err)
	}

	scored := make([]RankedCandidate, len(population))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i := range population {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cand := &population[i]
			candFeatures := features.ExtractCandidate(cand)
			scored[i] = RankedCandidate{
				CandidateID: cand.ID,
				Name:        cand.FullName(),
				Result:      s.engine.Score(candFeatures, jobFeatures),
				features:    candFeatures,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to score candidates: %w", err)
	}

	ranked := make([]RankedCandidate, 0, len(scored))
	for _, rc := range scored {
		if rc.Result.Score >= opts.MinScore {
			ranked = append(ranked, rc)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Result.Score != ranked[j].Result.Score {
			return ranked[i].Result.Score > ranked[j].Result.Score
		}
		return ranked[i].CandidateID.String() < ranked[j].CandidateID.String()
	})
	if len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}
	for i := range ranked {
		ranked[i].Ranking = i + 1
	}

	s.log.Info("ranked candidates for job",
		zap.String("job_id", jobID.String()),
		zap.Int("population", len(population)),
		zap.Int("ranked", len(ranked)),
		zap.Int("min_score", opts.MinScore))

	if opts.Persist {
		if err := s.persist(ctx, job, ranked, opts); err != nil {
			return nil, err
		}
	}
	return ranked, nil
}

// persist replaces the job's active recommendation set with this run
func (s *Service) persist(ctx context.Context, job *types.Job, ranked []RankedCandidate, opts Options) error {
	now := time.Now().UTC()
	sourceKey := job.ID.String()

	recs := make([]types.Recommendation, 0, len(ranked))
	for _, rc := range ranked {
		recs = append(recs, types.Recommendation{
			ID:           uuid.New(),
			OwnerID:      job.CompanyID,
			ItemType:     types.ItemTypeCandidate,
			ItemID:       rc.CandidateID,
			Score:        rc.Result.Score,
			Confidence:   rc.Result.Confidence,
			Reasons:      rc.Result.Reasons,
			Breakdown:    rc.Result.Breakdown,
			Algorithm:    types.AlgorithmContentBased,
			ModelVersion: opts.ModelVersion,
			Ranking:      rc.Ranking,
			SourceKey:    sourceKey,
			CreatedAt:    now,
			ExpiresAt:    now.Add(types.DefaultRecommendationTTL),
		})
	}

	if err := s.recs.ReplaceRecommendations(ctx, job.CompanyID, types.ItemTypeCandidate, sourceKey, recs); err != nil {
		return fmt.Errorf("failed to persist ranking for job %s: %w", job.ID, err)
	}
	return nil
}

// AnalyzeCandidate builds the strength/weakness report for one
// candidate against one job
func (s *Service) AnalyzeCandidate(ctx context.Context, candidateID, jobID uuid.UUID) (*analysis.Report, error) {
	cand, err := s.candidates.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	report := analysis.Analyze(features.ExtractCandidate(cand), features.ExtractJob(job))
	return &report, nil
}

// StoredRecommendations returns a company's active candidate
// recommendations, best ranking first
func (s *Service) StoredRecommendations(ctx context.Context, companyID uuid.UUID, minScore, limit int) ([]types.Recommendation, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return s.recs.ListActiveRecommendations(ctx, companyID, types.ItemTypeCandidate, minScore, limit)
}
