package scoring

import (
	"fmt"
	"math"

	"github.com/talentbridge/matchengine/internal/types"
)

// Explanatory thresholds: a criterion only emits a reason once its
// native points cross these, so low-signal criteria contribute to the
// score without producing noisy explanations.
const (
	skillsHighThreshold   = 70
	skillsMediumThreshold = 40
	experienceHighReason  = 25 // native points at which experience reasons read as high strength
	educationHighReason   = 20
	salaryReasonThreshold = 80
)

// Engine scores one candidate-feature set against one job-feature set
// under a fixed weight profile. An Engine is immutable and safe for
// concurrent use.
type Engine struct {
	profile Profile
}

// NewEngine validates the profile and returns an engine bound to it
func NewEngine(profile Profile) (*Engine, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &Engine{profile: profile}, nil
}

// Profile returns the engine's weight profile
func (e *Engine) Profile() Profile {
	return e.profile
}

// Score computes the weighted match between a candidate and a job.
// The returned score is an integer in [0,100]; the breakdown holds
// weighted per-criterion subscores summing to the score within
// rounding; confidence is the fraction of criteria that contributed a
// non-zero subscore.
func (e *Engine) Score(cand types.CandidateFeatures, job types.JobFeatures) types.MatchResult {
	breakdown := make(map[string]float64, len(e.profile.Criteria))
	reasons := make([]types.Reason, 0, len(e.profile.Criteria))

	total := 0.0
	nonZero := 0
	for _, criterion := range e.profile.Criteria {
		points := e.criterionPoints(criterion.Name, cand, job, &reasons)
		weighted := points * criterion.Scale * criterion.Weight
		breakdown[criterion.Name] = weighted
		total += weighted
		if weighted > 0 {
			nonZero++
		}
	}

	score := int(math.Round(total))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	confidence := float64(nonZero) / float64(len(e.profile.Criteria))
	if confidence > 1 {
		confidence = 1
	}

	return types.MatchResult{
		Score:      score,
		Confidence: confidence,
		Reasons:    reasons,
		Breakdown:  breakdown,
	}
}

// criterionPoints dispatches to the native scorer for one criterion
// and appends its explanatory reasons, keeping reason order fixed by
// the profile's criterion order.
func (e *Engine) criterionPoints(name string, cand types.CandidateFeatures, job types.JobFeatures, reasons *[]types.Reason) float64 {
	switch name {
	case CriterionSkills:
		pct := skillsPoints(cand, job, e.profile.NeutralSkillsDefault)
		if pct >= skillsHighThreshold {
			*reasons = append(*reasons, types.Reason{
				Type:     CriterionSkills,
				Message:  fmt.Sprintf("strong skills match (%d%% of required skills)", int(math.Round(pct))),
				Strength: types.StrengthHigh,
				Details:  map[string]any{"score": pct},
			})
		} else if pct >= skillsMediumThreshold {
			*reasons = append(*reasons, types.Reason{
				Type:     CriterionSkills,
				Message:  fmt.Sprintf("good skills match (%d%% of required skills)", int(math.Round(pct))),
				Strength: types.StrengthMedium,
				Details:  map[string]any{"score": pct},
			})
		}
		return pct

	case CriterionExperience:
		points, titleMatch := experiencePoints(cand, job)
		strength := types.StrengthMedium
		if points >= experienceHighReason {
			strength = types.StrengthHigh
		}
		if cand.TotalExperience > 0 {
			*reasons = append(*reasons, types.Reason{
				Type:     CriterionExperience,
				Message:  experienceTierMessage(cand.TotalExperience),
				Strength: strength,
				Details:  map[string]any{"years": cand.TotalExperience},
			})
		}
		if titleMatch {
			*reasons = append(*reasons, types.Reason{
				Type:     CriterionExperience,
				Message:  "prior role matches the job title",
				Strength: strength,
				Details:  map[string]any{"years": cand.TotalExperience},
			})
		}
		return points

	case CriterionEducation:
		points := educationPoints[cand.HighestEducation]
		if points >= educationHighReason {
			*reasons = append(*reasons, types.Reason{
				Type:     CriterionEducation,
				Message:  fmt.Sprintf("strong educational background (%s)", cand.HighestEducation),
				Strength: types.StrengthHigh,
				Details:  map[string]any{"level": cand.HighestEducation.String()},
			})
		} else if points > 0 {
			*reasons = append(*reasons, types.Reason{
				Type:     CriterionEducation,
				Message:  fmt.Sprintf("relevant educational background (%s)", cand.HighestEducation),
				Strength: types.StrengthMedium,
				Details:  map[string]any{"level": cand.HighestEducation.String()},
			})
		}
		return points

	case CriterionLocation:
		points := LocationPoints(cand.Location, job.Location)
		if points >= locationCityPoints {
			*reasons = append(*reasons, types.Reason{
				Type:     CriterionLocation,
				Message:  "location matches the job posting",
				Strength: types.StrengthMedium,
				Details:  map[string]any{"city": cand.Location.City, "country": cand.Location.Country},
			})
		} else if points >= locationCountryPoints {
			*reasons = append(*reasons, types.Reason{
				Type:     CriterionLocation,
				Message:  "located in the same country as the job",
				Strength: types.StrengthMedium,
				Details:  map[string]any{"city": cand.Location.City, "country": cand.Location.Country},
			})
		}
		return points

	case CriterionSalary:
		points := salaryPoints(cand.ExpectedSalary, job.Salary)
		if points >= salaryReasonThreshold {
			*reasons = append(*reasons, types.Reason{
				Type:     CriterionSalary,
				Message:  "offered salary meets expectations",
				Strength: types.StrengthMedium,
			})
		}
		return points

	case CriterionJobType:
		return jobTypeMatchPoints(cand.DesiredJobType, job.JobType)

	default:
		// unreachable for validated profiles
		return 0
	}
}

// experienceTierMessage describes the experience band for reasons
func experienceTierMessage(years float64) string {
	if years >= 5 {
		return "extensive hands-on experience (5+ years)"
	}
	if years >= 2 {
		return "solid hands-on experience (2-5 years)"
	}
	return "limited hands-on experience"
}
