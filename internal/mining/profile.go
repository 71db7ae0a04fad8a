// Package mining derives a company's hiring-demand profile from its
// recent job postings and proactively suggests matching candidates
// before a specific posting asks for them.
package mining

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentbridge/matchengine/internal/features"
	"github.com/talentbridge/matchengine/internal/store"
	"github.com/talentbridge/matchengine/internal/types"
)

// Demand-profile sampling bounds
const (
	demandWindow       = 30 * 24 * time.Hour
	maxSampledPostings = 5
	maxDemandKeywords  = 20

	preferredMinYears = 2.0
	preferredMaxYears = 10.0
)

// DemandProfile summarizes what a company has recently been hiring
// for. It is rebuilt from the posting history and cached; it carries
// no per-candidate state.
type DemandProfile struct {
	CompanyID uuid.UUID `json:"company_id"`
	// Keywords are the most frequent posting keywords, most frequent
	// first, capped at maxDemandKeywords
	Keywords []string `json:"keywords"`
	// Locations are the distinct posting locations, first-seen order
	Locations []string `json:"locations"`
	// PreferredEducation lists the levels the company's postings
	// typically target
	PreferredEducation []types.EducationLevel `json:"preferred_education"`
	MinExperience      float64                `json:"min_experience"`
	MaxExperience      float64                `json:"max_experience"`
	SampledPostings    int                    `json:"sampled_postings"`
	GeneratedAt        time.Time              `json:"generated_at"`
}

// Service mines demand profiles and produces proactive suggestions
type Service struct {
	candidates store.CandidateStore
	jobs       store.JobStore
	recs       store.RecommendationStore
	cache      Cache
	log        *zap.Logger
}

// NewService wires a mining service. cache may be a no-op or memory
// cache in tests.
func NewService(candidates store.CandidateStore, jobs store.JobStore, recs store.RecommendationStore, cache Cache, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		candidates: candidates,
		jobs:       jobs,
		recs:       recs,
		cache:      cache,
		log:        log,
	}
}

// DemandProfile returns the company's current demand profile, serving
// from cache when a fresh copy exists. A company with no postings in
// the window yields an empty profile, not an error.
func (s *Service) DemandProfile(ctx context.Context, companyID uuid.UUID) (*DemandProfile, error) {
	if cached, ok, err := s.cache.GetDemandProfile(ctx, companyID); err != nil {
		// cache trouble never blocks profile building
		s.log.Warn("demand profile cache read failed",
			zap.String("company_id", companyID.String()), zap.Error(err))
	} else if ok {
		return cached, nil
	}

	since := time.Now().Add(-demandWindow)
	postings, err := s.jobs.ListCompanyJobsSince(ctx, companyID, since, maxSampledPostings)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent postings: %w", err)
	}

	profile := buildProfile(companyID, postings)
	if err := s.cache.SetDemandProfile(ctx, profile); err != nil {
		s.log.Warn("demand profile cache write failed",
			zap.String("company_id", companyID.String()), zap.Error(err))
	}
	return profile, nil
}

// buildProfile aggregates keyword frequencies and location coverage
// across the sampled postings
func buildProfile(companyID uuid.UUID, postings []types.Job) *DemandProfile {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var locations []string
	seenLocation := make(map[string]bool)

	order := 0
	for _, job := range postings {
		feat := features.ExtractJob(&job)
		for _, kw := range feat.Keywords {
			if _, ok := counts[kw]; !ok {
				firstSeen[kw] = order
				order++
			}
			counts[kw]++
		}
		if feat.Location != "" && !seenLocation[feat.Location] {
			seenLocation[feat.Location] = true
			locations = append(locations, feat.Location)
		}
	}

	keywords := make([]string, 0, len(counts))
	for kw := range counts {
		keywords = append(keywords, kw)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return firstSeen[keywords[i]] < firstSeen[keywords[j]]
	})
	if len(keywords) > maxDemandKeywords {
		keywords = keywords[:maxDemandKeywords]
	}

	return &DemandProfile{
		CompanyID:          companyID,
		Keywords:           keywords,
		Locations:          locations,
		PreferredEducation: []types.EducationLevel{types.EducationBachelor, types.EducationMaster},
		MinExperience:      preferredMinYears,
		MaxExperience:      preferredMaxYears,
		SampledPostings:    len(postings),
		GeneratedAt:        time.Now().UTC(),
	}
}
