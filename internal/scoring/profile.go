// Package scoring computes weighted match scores between candidate
// and job feature structs. Scoring is a pure function of its inputs:
// no hidden state, no randomness, identical inputs always produce
// identical results.
package scoring

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// Criterion names shared across profiles and breakdowns
const (
	CriterionSkills     = "skills"
	CriterionExperience = "experience"
	CriterionEducation  = "education"
	CriterionLocation   = "location"
	CriterionSalary     = "salary"
	CriterionJobType    = "jobType"
)

// weightSumTolerance is the allowed float drift when checking that
// profile weights sum to 1.0
const weightSumTolerance = 1e-9

// Criterion is one weighted scoring dimension in a profile. Scale
// converts the criterion's native point range onto the profile's
// basis before weighting; the ranking profile keeps the historical
// native scales (scale 1), other profiles normalize to 0-100.
type Criterion struct {
	Name   string  `validate:"required"`
	Weight float64 `validate:"gte=0,lte=1"`
	Scale  float64 `validate:"gt=0"`
}

// Profile is a named set of per-criterion weights summing to 1.0.
// Profiles are plain configuration values: new ones can be added
// without touching the engine.
type Profile struct {
	Name     string      `validate:"required"`
	Criteria []Criterion `validate:"min=1,dive"`

	// NeutralSkillsDefault makes an empty job keyword list score the
	// skills criterion at half points instead of zero, so
	// under-specified postings are not unfairly penalized
	NeutralSkillsDefault bool
}

var validate = validator.New()

// knownCriteria are the criterion names the engine can score
var knownCriteria = map[string]bool{
	CriterionSkills:     true,
	CriterionExperience: true,
	CriterionEducation:  true,
	CriterionLocation:   true,
	CriterionSalary:     true,
	CriterionJobType:    true,
}

// Validate checks the profile's configuration contract: valid field
// ranges, known and unique criterion names, and weights summing to 1.0.
func (p Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid profile %q: %w", p.Name, err)
	}

	sum := 0.0
	seen := make(map[string]bool)
	for _, c := range p.Criteria {
		if !knownCriteria[c.Name] {
			return fmt.Errorf("invalid profile %q: unknown criterion %q", p.Name, c.Name)
		}
		if seen[c.Name] {
			return fmt.Errorf("invalid profile %q: duplicate criterion %q", p.Name, c.Name)
		}
		seen[c.Name] = true
		sum += c.Weight
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("invalid profile %q: criterion weights sum to %v, want 1.0", p.Name, sum)
	}
	return nil
}

// RankingProfile is the candidate-ranking-for-a-job weight profile.
// Criteria keep their historical native point scales (skills 0-100,
// experience 0-50, education 0-30, location 0-20), so a perfect match
// lands in the low 60s rather than at 100.
func RankingProfile() Profile {
	return Profile{
		Name: "ranking",
		Criteria: []Criterion{
			{Name: CriterionSkills, Weight: 0.40, Scale: 1},
			{Name: CriterionExperience, Weight: 0.30, Scale: 1},
			{Name: CriterionEducation, Weight: 0.20, Scale: 1},
			{Name: CriterionLocation, Weight: 0.10, Scale: 1},
		},
	}
}

// MatchProfile is the job/candidate matching profile used for
// notification targeting. Every criterion is scaled proportionally to
// a 0-100 basis before weighting.
func MatchProfile() Profile {
	return Profile{
		Name: "match",
		Criteria: []Criterion{
			{Name: CriterionSkills, Weight: 0.35, Scale: 1},
			{Name: CriterionExperience, Weight: 0.25, Scale: 2},
			{Name: CriterionEducation, Weight: 0.15, Scale: 100.0 / 30.0},
			{Name: CriterionLocation, Weight: 0.10, Scale: 5},
			{Name: CriterionSalary, Weight: 0.10, Scale: 1},
			{Name: CriterionJobType, Weight: 0.05, Scale: 1},
		},
		NeutralSkillsDefault: true,
	}
}
