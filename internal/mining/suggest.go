package mining

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentbridge/matchengine/internal/features"
	"github.com/talentbridge/matchengine/internal/scoring"
	"github.com/talentbridge/matchengine/internal/store"
	"github.com/talentbridge/matchengine/internal/types"
)

// Demand-scoring split: skills dominate, the rest qualifies
const (
	skillsDemandWeight = 0.5

	experienceInRangePoints = 25
	experiencePartialPoints = 15

	educationPreferredPoints = 15
	educationAnyPoints       = 8

	locationDemandPoints = 10
)

// Suggestion thresholds
const (
	suggestMinScore = 50
	suggestLimit    = 20

	skillsReasonHigh   = 60
	skillsReasonMedium = 30

	technicalRoleSkillsPercent = 40
	seniorRoleMinYears         = 3.0

	newCandidateWindow = 30 * 24 * time.Hour
)

// Suggestion is one proactively matched candidate for a company's
// demand profile
type Suggestion struct {
	CandidateID    uuid.UUID      `json:"candidate_id"`
	Name           string         `json:"name"`
	Score          int            `json:"score"`
	Confidence     float64        `json:"confidence"`
	Reasons        []types.Reason `json:"reasons"`
	PotentialRoles []string       `json:"potential_roles"`
	NewCandidate   bool           `json:"new_candidate"`
}

// SuggestCandidates matches the candidate pool against the company's
// demand profile and persists the result as a proactive
// recommendation set. The mined profile rides along so callers can
// explain what the suggestions were matched against. A company with
// no recent postings yields no suggestions.
func (s *Service) SuggestCandidates(ctx context.Context, companyID uuid.UUID) (*DemandProfile, []Suggestion, error) {
	profile, err := s.DemandProfile(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	if profile.SampledPostings == 0 {
		s.log.Info("no recent postings to mine", zap.String("company_id", companyID.String()))
		return profile, nil, nil
	}

	pool, err := s.candidates.QueryCandidates(ctx, store.CandidateFilter{
		Keywords: profile.Keywords,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(pool))
	for i := range pool {
		sg := scoreAgainstDemand(&pool[i], profile)
		if sg.Score >= suggestMinScore {
			suggestions = append(suggestions, sg)
		}
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].CandidateID.String() < suggestions[j].CandidateID.String()
	})
	if len(suggestions) > suggestLimit {
		suggestions = suggestions[:suggestLimit]
	}

	s.log.Info("mined proactive suggestions",
		zap.String("company_id", companyID.String()),
		zap.Int("pool", len(pool)),
		zap.Int("suggestions", len(suggestions)))

	if err := s.persist(ctx, companyID, suggestions); err != nil {
		return nil, nil, err
	}
	return profile, suggestions, nil
}

// scoreAgainstDemand scores one candidate against a demand profile on
// a 0-100 scale
func scoreAgainstDemand(cand *types.Candidate, profile *DemandProfile) Suggestion {
	feat := features.ExtractCandidate(cand)
	var reasons []types.Reason

	skillsPct := scoring.SkillsMatchPercent(feat.Skills, profile.Keywords)
	total := skillsPct * skillsDemandWeight
	if skillsPct >= skillsReasonHigh {
		reasons = append(reasons, types.Reason{
			Type:     "skills",
			Message:  fmt.Sprintf("skills cover %d%% of the company's recent demand", int(math.Round(skillsPct))),
			Strength: types.StrengthHigh,
		})
	} else if skillsPct >= skillsReasonMedium {
		reasons = append(reasons, types.Reason{
			Type:     "skills",
			Message:  fmt.Sprintf("skills cover %d%% of the company's recent demand", int(math.Round(skillsPct))),
			Strength: types.StrengthMedium,
		})
	}

	switch {
	case feat.TotalExperience >= profile.MinExperience && feat.TotalExperience <= profile.MaxExperience:
		total += experienceInRangePoints
		reasons = append(reasons, types.Reason{
			Type:     "experience",
			Message:  fmt.Sprintf("experience fits the company's typical hiring range (%.1f years)", feat.TotalExperience),
			Strength: types.StrengthHigh,
		})
	case feat.TotalExperience > 0:
		total += experiencePartialPoints
		reasons = append(reasons, types.Reason{
			Type:     "experience",
			Message:  fmt.Sprintf("has professional experience (%.1f years)", feat.TotalExperience),
			Strength: types.StrengthMedium,
		})
	}

	switch {
	case preferredLevel(feat.HighestEducation, profile.PreferredEducation):
		total += educationPreferredPoints
		reasons = append(reasons, types.Reason{
			Type:     "education",
			Message:  fmt.Sprintf("holds a commonly requested degree (%s)", feat.HighestEducation),
			Strength: types.StrengthHigh,
		})
	case feat.HighestEducation > types.EducationNone:
		total += educationAnyPoints
		reasons = append(reasons, types.Reason{
			Type:     "education",
			Message:  fmt.Sprintf("holds a degree (%s)", feat.HighestEducation),
			Strength: types.StrengthMedium,
		})
	}

	if matchesAnyLocation(feat.Location, profile.Locations) {
		total += locationDemandPoints
		reasons = append(reasons, types.Reason{
			Type:     "location",
			Message:  "located where the company hires",
			Strength: types.StrengthMedium,
		})
	}

	score := int(math.Round(total))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	confidence := float64(len(reasons)) / 4.0 * float64(score) / 100.0
	if confidence > 1 {
		confidence = 1
	}

	return Suggestion{
		CandidateID:    cand.ID,
		Name:           cand.FullName(),
		Score:          score,
		Confidence:     confidence,
		Reasons:        reasons,
		PotentialRoles: potentialRoles(skillsPct, feat.TotalExperience),
		NewCandidate:   time.Since(cand.CreatedAt) <= newCandidateWindow,
	}
}

func preferredLevel(level types.EducationLevel, preferred []types.EducationLevel) bool {
	for _, p := range preferred {
		if level == p {
			return true
		}
	}
	return false
}

func matchesAnyLocation(loc types.Location, postingLocations []string) bool {
	for _, pl := range postingLocations {
		if scoring.LocationPoints(loc, pl) > 0 {
			return true
		}
	}
	return false
}

// potentialRoles sketches which posting categories the candidate
// could fill
func potentialRoles(skillsPct, years float64) []string {
	var roles []string
	if skillsPct >= technicalRoleSkillsPercent {
		roles = append(roles, "technical roles matching the demanded skill set")
	}
	if years >= seniorRoleMinYears {
		roles = append(roles, "senior positions")
	}
	return roles
}

// persist replaces the company's proactive recommendation set
func (s *Service) persist(ctx context.Context, companyID uuid.UUID, suggestions []Suggestion) error {
	now := time.Now().UTC()
	sourceKey := "proactive:" + companyID.String()

	recs := make([]types.Recommendation, 0, len(suggestions))
	for i, sg := range suggestions {
		recs = append(recs, types.Recommendation{
			ID:           uuid.New(),
			OwnerID:      companyID,
			ItemType:     types.ItemTypeCandidate,
			ItemID:       sg.CandidateID,
			Score:        sg.Score,
			Confidence:   sg.Confidence,
			Reasons:      sg.Reasons,
			Algorithm:    types.AlgorithmProactive,
			ModelVersion: "v2.1",
			Ranking:      i + 1,
			SourceKey:    sourceKey,
			CreatedAt:    now,
			ExpiresAt:    now.Add(types.DefaultRecommendationTTL),
		})
	}

	if err := s.recs.ReplaceRecommendations(ctx, companyID, types.ItemTypeCandidate, sourceKey, recs); err != nil {
		return fmt.Errorf("failed to persist proactive suggestions: %w", err)
	}
	return nil
}
