package scoring

import (
	"strings"

	"github.com/talentbridge/matchengine/internal/types"
)

// Native point ranges per criterion. The ranking profile consumes
// these raw; other profiles scale them onto a 0-100 basis.
const (
	experienceHighPoints   = 30 // >= 5 years
	experienceMediumPoints = 20 // 2-5 years
	experienceLowPoints    = 10 // < 2 years
	experienceTitleBonus   = 20 // prior position appears in the job title

	locationCityPoints    = 20
	locationCountryPoints = 10

	salaryFullPoints = 100
	salaryHalfPoints = 50
	jobTypePoints    = 100

	neutralSkillsPoints = 50
)

// educationPoints maps the highest-education ordinal to native points
var educationPoints = map[types.EducationLevel]float64{
	types.EducationPhD:       30,
	types.EducationMaster:    25,
	types.EducationBachelor:  20,
	types.EducationDiploma:   15,
	types.EducationSecondary: 10,
	types.EducationNone:      0,
}

// SkillsMatchPercent returns the share of relevant job keywords
// (length > 2) covered by the candidate's skill set, in [0,100]. A
// keyword is covered when any skill is a substring of it or vice
// versa. No match is 0, not an error.
func SkillsMatchPercent(skills []string, keywords []string) float64 {
	if len(skills) == 0 {
		return 0
	}

	matched := 0
	relevant := 0
	for _, kw := range keywords {
		if len(kw) < 3 {
			continue
		}
		relevant++
		for _, skill := range skills {
			if skill == "" {
				continue
			}
			if strings.Contains(skill, kw) || strings.Contains(kw, skill) {
				matched++
				break
			}
		}
	}
	if relevant == 0 {
		return 0
	}
	return float64(matched) / float64(relevant) * 100
}

// skillsPoints scores the skills criterion on its native 0-100 scale
func skillsPoints(cand types.CandidateFeatures, job types.JobFeatures, neutralDefault bool) float64 {
	relevant := 0
	for _, kw := range job.Keywords {
		if len(kw) >= 3 {
			relevant++
		}
	}
	if relevant == 0 {
		if neutralDefault {
			return neutralSkillsPoints
		}
		return 0
	}
	return SkillsMatchPercent(cand.Skills, job.Keywords)
}

// experiencePoints scores the experience criterion on its native 0-50
// scale: a tier by total years plus a bonus when any prior position
// title appears inside the job title. Also reports whether the title
// bonus applied, for reason generation.
func experiencePoints(cand types.CandidateFeatures, job types.JobFeatures) (points float64, titleMatch bool) {
	if cand.TotalExperience >= 5 {
		points = experienceHighPoints
	} else if cand.TotalExperience >= 2 {
		points = experienceMediumPoints
	} else if cand.TotalExperience > 0 {
		points = experienceLowPoints
	}

	for _, area := range cand.ExperienceAreas {
		if area.Position != "" && strings.Contains(job.Title, area.Position) {
			points += experienceTitleBonus
			titleMatch = true
			break
		}
	}
	return points, titleMatch
}

// LocationPoints scores the location criterion on its native 0-20
// scale: bidirectional city substring match earns full points, a
// country-only match half, anything else zero.
func LocationPoints(loc types.Location, jobLocation string) float64 {
	if jobLocation == "" {
		return 0
	}
	if loc.City != "" && (strings.Contains(jobLocation, loc.City) || strings.Contains(loc.City, jobLocation)) {
		return locationCityPoints
	}
	if loc.Country != "" && (strings.Contains(jobLocation, loc.Country) || strings.Contains(loc.Country, jobLocation)) {
		return locationCountryPoints
	}
	return 0
}

// salaryPoints scores the salary criterion on a 0-100 scale. Missing
// data on either side scores zero rather than guessing.
func salaryPoints(expected, offered float64) float64 {
	if expected <= 0 || offered <= 0 {
		return 0
	}
	if offered >= expected {
		return salaryFullPoints
	}
	if offered >= expected*0.8 {
		return salaryHalfPoints
	}
	return 0
}

// jobTypePoints scores the jobType criterion: exact match or nothing
func jobTypeMatchPoints(desired, offered string) float64 {
	if desired == "" || offered == "" {
		return 0
	}
	if desired == offered {
		return jobTypePoints
	}
	return 0
}
