package ranking

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/talentbridge/matchengine/internal/analysis"
	"github.com/talentbridge/matchengine/internal/features"
	"github.com/talentbridge/matchengine/internal/scoring"
	"github.com/talentbridge/matchengine/internal/types"
)

// Comparison size bounds: fewer than two candidates is not a
// comparison, more than five stops being readable
const (
	MinCompareCandidates = 2
	MaxCompareCandidates = 5
)

// Gap thresholds for key-difference callouts
const (
	skillsGapPercent   = 20
	experienceGapYears = 2.0
	educationGapLevels = 2
)

// CompareEntry is one candidate's column in a comparison table
type CompareEntry struct {
	CandidateID   uuid.UUID          `json:"candidate_id"`
	Name          string             `json:"name"`
	Score         int                `json:"score"`
	Breakdown     map[string]float64 `json:"breakdown"`
	SkillsPercent float64            `json:"skills_percent"`
	Experience    float64            `json:"experience_years"`
	Education     string             `json:"education"`
	TrainingCount int                `json:"training_count"`
	Languages     int                `json:"languages"`
	Strengths     []string           `json:"strengths"`
	Weaknesses    []string           `json:"weaknesses"`
	Assessment    string             `json:"assessment"`

	educationLevel types.EducationLevel
}

// Comparison is a side-by-side view of up to five candidates against
// one job
type Comparison struct {
	JobID           uuid.UUID      `json:"job_id"`
	Entries         []CompareEntry `json:"entries"`
	KeyDifferences  []string       `json:"key_differences"`
	Recommendations []string       `json:"recommendations"`
}

// Compare scores the given candidates against the job and highlights
// the differences that matter for a hiring decision. Entries are
// ordered by score descending with candidate id breaking ties.
func (s *Service) Compare(ctx context.Context, jobID uuid.UUID, candidateIDs []uuid.UUID) (*Comparison, error) {
	if len(candidateIDs) < MinCompareCandidates || len(candidateIDs) > MaxCompareCandidates {
		return nil, fmt.Errorf("comparison needs %d to %d candidates, got %d",
			MinCompareCandidates, MaxCompareCandidates, len(candidateIDs))
	}

	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	jobFeatures := features.ExtractJob(job)

	entries := make([]CompareEntry, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		cand, err := s.candidates.GetCandidate(ctx, id)
		if err != nil {
			return nil, err
		}
		candFeatures := features.ExtractCandidate(cand)
		result := s.engine.Score(candFeatures, jobFeatures)
		report := analysis.Analyze(candFeatures, jobFeatures)

		entries = append(entries, CompareEntry{
			CandidateID:    cand.ID,
			Name:           cand.FullName(),
			Score:          result.Score,
			Breakdown:      result.Breakdown,
			SkillsPercent:  scoring.SkillsMatchPercent(candFeatures.Skills, jobFeatures.Keywords),
			Experience:     candFeatures.TotalExperience,
			Education:      candFeatures.HighestEducation.String(),
			TrainingCount:  candFeatures.TrainingCount,
			Languages:      len(candFeatures.Languages),
			Strengths:      findingMessages(report.Strengths),
			Weaknesses:     findingMessages(report.Weaknesses),
			Assessment:     report.Assessment,
			educationLevel: candFeatures.HighestEducation,
		})
	}

	sortEntries(entries)

	return &Comparison{
		JobID:           jobID,
		Entries:         entries,
		KeyDifferences:  keyDifferences(entries),
		Recommendations: compareRecommendations(entries),
	}, nil
}

func sortEntries(entries []CompareEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].CandidateID.String() < entries[j].CandidateID.String()
	})
}

func findingMessages(findings []analysis.Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Message)
	}
	return out
}

// keyDifferences calls out the gaps between the two top-ranked
// entries when they cross the thresholds; entries must already be
// sorted
func keyDifferences(entries []CompareEntry) []string {
	var diffs []string
	first, second := entries[0], entries[1]

	if gap := math.Abs(first.SkillsPercent - second.SkillsPercent); gap > skillsGapPercent {
		ahead := first
		if second.SkillsPercent > first.SkillsPercent {
			ahead = second
		}
		diffs = append(diffs, fmt.Sprintf("skills coverage differs by %.0f percentage points; %s leads", gap, ahead.Name))
	}
	if gap := math.Abs(first.Experience - second.Experience); gap > experienceGapYears {
		ahead := first
		if second.Experience > first.Experience {
			ahead = second
		}
		diffs = append(diffs, fmt.Sprintf("experience differs by %.1f years; %s leads", gap, ahead.Name))
	}
	if eduGap(first.educationLevel, second.educationLevel) >= educationGapLevels {
		ahead := first
		if second.educationLevel > first.educationLevel {
			ahead = second
		}
		diffs = append(diffs, fmt.Sprintf("education differs by two or more levels; %s leads (%s)", ahead.Name, ahead.Education))
	}
	return diffs
}

func eduGap(a, b types.EducationLevel) types.EducationLevel {
	if a > b {
		return a - b
	}
	return b - a
}

// compareRecommendations derives hiring guidance from the score shape
func compareRecommendations(entries []CompareEntry) []string {
	minScore, maxScore := entries[0].Score, entries[0].Score
	strong := 0
	total := 0
	for _, e := range entries {
		minScore = min(minScore, e.Score)
		maxScore = max(maxScore, e.Score)
		if e.Score >= 70 {
			strong++
		}
		total += e.Score
	}
	avg := float64(total) / float64(len(entries))

	var recs []string
	if maxScore-minScore > 30 {
		recs = append(recs, "scores vary widely; focus on the top-ranked candidates")
	}
	if strong > 1 {
		recs = append(recs, "several strong candidates; compare beyond the score")
	}
	if avg < 50 {
		recs = append(recs, "overall fit is low; consider widening the search")
	}
	return recs
}
