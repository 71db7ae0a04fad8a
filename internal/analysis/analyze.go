// Package analysis produces explainable strength/weakness reports for
// a candidate profile against a job posting. Evaluation is a pure
// rule-table walk: each category yields at most one strength or one
// weakness, and weaknesses carry a paired recommendation.
package analysis

import (
	"github.com/talentbridge/matchengine/internal/types"
)

// Finding categories, in report order
const (
	CategorySkills     = "skills"
	CategoryExperience = "experience"
	CategoryEducation  = "education"
	CategoryTraining   = "training"
	CategoryLanguages  = "languages"
	CategoryLocation   = "location"
)

// Overall assessment labels, best to worst
const (
	AssessmentExcellent = "excellent"
	AssessmentStrong    = "strong"
	AssessmentGood      = "good"
	AssessmentAverage   = "average"
	AssessmentWeak      = "weak"
)

// Finding is one categorized observation about a candidate profile
type Finding struct {
	Category string         `json:"category"`
	Message  string         `json:"message"`
	Strength types.Strength `json:"strength"`
}

// Report is the full profile assessment for one candidate against one
// job
type Report struct {
	Strengths       []Finding `json:"strengths"`
	Weaknesses      []Finding `json:"weaknesses"`
	Recommendations []string  `json:"recommendations"`
	Assessment      string    `json:"assessment"`
}

// Analyze walks the category rules in fixed order and assembles the
// report. Identical inputs always produce identical reports.
func Analyze(cand types.CandidateFeatures, job types.JobFeatures) Report {
	var report Report
	for _, rule := range rules {
		out := rule.evaluate(cand, job)
		if out.strength != nil {
			report.Strengths = append(report.Strengths, *out.strength)
		}
		if out.weakness != nil {
			report.Weaknesses = append(report.Weaknesses, *out.weakness)
		}
		if out.recommendation != "" {
			report.Recommendations = append(report.Recommendations, out.recommendation)
		}
	}
	report.Assessment = AssessmentLabel(report.Strengths, report.Weaknesses)
	return report
}

// AssessmentLabel collapses findings into one overall label. High
// strengths carry the excellent/strong tiers; below those the label
// only compares counts.
func AssessmentLabel(strengths, weaknesses []Finding) string {
	highS := countHigh(strengths)
	highW := countHigh(weaknesses)

	switch {
	case highS >= 3 && highW == 0:
		return AssessmentExcellent
	case highS >= 2 && highW <= 1:
		return AssessmentStrong
	case len(strengths) > len(weaknesses):
		return AssessmentGood
	case len(strengths) == len(weaknesses):
		return AssessmentAverage
	default:
		return AssessmentWeak
	}
}

func countHigh(findings []Finding) int {
	n := 0
	for _, f := range findings {
		if f.Strength == types.StrengthHigh {
			n++
		}
	}
	return n
}
