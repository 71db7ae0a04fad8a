package analysis

import (
	"fmt"
	"strings"

	"github.com/talentbridge/matchengine/internal/scoring"
	"github.com/talentbridge/matchengine/internal/types"
)

// Thresholds for categorizing candidate profile signals
const (
	skillsStrongPercent = 70
	skillsGoodPercent   = 40

	experienceStrongYears = 5
	experienceGoodYears   = 2

	trainingStrongCount = 5
	trainingGoodCount   = 2

	languageStrongCount = 3
	languageGoodCount   = 2

	locationNearbyPoints = 15
)

// outcome is what one category rule produces: at most one strength or
// one weakness, plus an optional recommendation paired with the
// weakness.
type outcome struct {
	strength       *Finding
	weakness       *Finding
	recommendation string
}

// categoryRule evaluates one profile dimension against a job
type categoryRule struct {
	category string
	evaluate func(cand types.CandidateFeatures, job types.JobFeatures) outcome
}

// rules is the fixed evaluation order; reports list findings in this
// category order so repeated runs render identically
var rules = []categoryRule{
	{CategorySkills, evaluateSkills},
	{CategoryExperience, evaluateExperience},
	{CategoryEducation, evaluateEducation},
	{CategoryTraining, evaluateTraining},
	{CategoryLanguages, evaluateLanguages},
	{CategoryLocation, evaluateLocation},
}

func evaluateSkills(cand types.CandidateFeatures, job types.JobFeatures) outcome {
	pct := scoring.SkillsMatchPercent(cand.Skills, job.Keywords)

	if pct >= skillsStrongPercent {
		return outcome{strength: &Finding{
			Category: CategorySkills,
			Message:  fmt.Sprintf("strong technical skills match (%.0f%% of required skills)", pct),
			Strength: types.StrengthHigh,
		}}
	}
	if pct >= skillsGoodPercent {
		return outcome{strength: &Finding{
			Category: CategorySkills,
			Message:  fmt.Sprintf("good technical skills match (%.0f%% of required skills)", pct),
			Strength: types.StrengthMedium,
		}}
	}
	return outcome{
		weakness: &Finding{
			Category: CategorySkills,
			Message:  "significant skill gaps for this role",
			Strength: types.StrengthHigh,
		},
		recommendation: missingSkillsRecommendation(cand.Skills, job.Keywords),
	}
}

// missingSkillsRecommendation names up to three uncovered keywords
func missingSkillsRecommendation(skills, keywords []string) string {
	var missing []string
	for _, kw := range keywords {
		if len(kw) < 3 {
			continue
		}
		covered := false
		for _, skill := range skills {
			if skill == "" {
				continue
			}
			if strings.Contains(skill, kw) || strings.Contains(kw, skill) {
				covered = true
				break
			}
		}
		if !covered {
			missing = append(missing, kw)
		}
		if len(missing) == 3 {
			break
		}
	}
	if len(missing) == 0 {
		return "broaden the skill profile to cover the role's requirements"
	}
	return "develop skills in: " + strings.Join(missing, ", ")
}

func evaluateExperience(cand types.CandidateFeatures, _ types.JobFeatures) outcome {
	years := cand.TotalExperience

	if years >= experienceStrongYears {
		return outcome{strength: &Finding{
			Category: CategoryExperience,
			Message:  fmt.Sprintf("extensive professional experience (%.1f years)", years),
			Strength: types.StrengthHigh,
		}}
	}
	if years >= experienceGoodYears {
		return outcome{strength: &Finding{
			Category: CategoryExperience,
			Message:  fmt.Sprintf("solid professional experience (%.1f years)", years),
			Strength: types.StrengthMedium,
		}}
	}
	if years > 0 {
		return outcome{
			weakness: &Finding{
				Category: CategoryExperience,
				Message:  "limited professional experience",
				Strength: types.StrengthMedium,
			},
			recommendation: "gain more hands-on experience through projects or internships",
		}
	}
	return outcome{
		weakness: &Finding{
			Category: CategoryExperience,
			Message:  "no recorded work experience",
			Strength: types.StrengthHigh,
		},
		recommendation: "gain more hands-on experience through projects or internships",
	}
}

func evaluateEducation(cand types.CandidateFeatures, _ types.JobFeatures) outcome {
	switch {
	case cand.HighestEducation >= types.EducationMaster:
		return outcome{strength: &Finding{
			Category: CategoryEducation,
			Message:  fmt.Sprintf("advanced degree (%s)", cand.HighestEducation),
			Strength: types.StrengthHigh,
		}}
	case cand.HighestEducation >= types.EducationBachelor:
		return outcome{strength: &Finding{
			Category: CategoryEducation,
			Message:  "solid academic background (bachelor)",
			Strength: types.StrengthMedium,
		}}
	case cand.HighestEducation >= types.EducationSecondary:
		return outcome{
			weakness: &Finding{
				Category: CategoryEducation,
				Message:  fmt.Sprintf("education below the typical bar for this role (%s)", cand.HighestEducation),
				Strength: types.StrengthMedium,
			},
			recommendation: "pursue further qualifications or professional certifications",
		}
	default:
		return outcome{
			weakness: &Finding{
				Category: CategoryEducation,
				Message:  "no formal education recorded",
				Strength: types.StrengthHigh,
			},
			recommendation: "pursue further qualifications or professional certifications",
		}
	}
}

func evaluateTraining(cand types.CandidateFeatures, _ types.JobFeatures) outcome {
	switch {
	case cand.TrainingCount >= trainingStrongCount && cand.HasCertificates:
		return outcome{strength: &Finding{
			Category: CategoryTraining,
			Message:  fmt.Sprintf("strong continuing-education record (%d trainings, certified)", cand.TrainingCount),
			Strength: types.StrengthHigh,
		}}
	case cand.TrainingCount >= trainingGoodCount:
		return outcome{strength: &Finding{
			Category: CategoryTraining,
			Message:  fmt.Sprintf("multiple completed trainings (%d)", cand.TrainingCount),
			Strength: types.StrengthMedium,
		}}
	case cand.TrainingCount == 0:
		return outcome{
			weakness: &Finding{
				Category: CategoryTraining,
				Message:  "no completed trainings on record",
				Strength: types.StrengthMedium,
			},
			recommendation: "complete trainings or courses relevant to the role",
		}
	default:
		// a single training carries no signal either way
		return outcome{}
	}
}

func evaluateLanguages(cand types.CandidateFeatures, _ types.JobFeatures) outcome {
	advanced := false
	for _, l := range cand.Languages {
		if l.Proficiency == "advanced" || l.Proficiency == "native" {
			advanced = true
			break
		}
	}

	switch {
	case len(cand.Languages) >= languageStrongCount && advanced:
		return outcome{strength: &Finding{
			Category: CategoryLanguages,
			Message:  fmt.Sprintf("multilingual with advanced proficiency (%d languages)", len(cand.Languages)),
			Strength: types.StrengthHigh,
		}}
	case len(cand.Languages) >= languageGoodCount:
		return outcome{strength: &Finding{
			Category: CategoryLanguages,
			Message:  fmt.Sprintf("speaks multiple languages (%d)", len(cand.Languages)),
			Strength: types.StrengthMedium,
		}}
	default:
		return outcome{
			weakness: &Finding{
				Category: CategoryLanguages,
				Message:  "limited language coverage",
				Strength: types.StrengthLow,
			},
			recommendation: "develop proficiency in an additional language",
		}
	}
}

func evaluateLocation(cand types.CandidateFeatures, job types.JobFeatures) outcome {
	points := scoring.LocationPoints(cand.Location, job.Location)

	if points >= locationNearbyPoints {
		return outcome{strength: &Finding{
			Category: CategoryLocation,
			Message:  "located near the job",
			Strength: types.StrengthMedium,
		}}
	}
	if points == 0 && job.Location != "" {
		return outcome{weakness: &Finding{
			Category: CategoryLocation,
			Message:  "outside the job's location",
			Strength: types.StrengthLow,
		}}
	}
	return outcome{}
}
