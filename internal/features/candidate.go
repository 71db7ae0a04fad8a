// Package features normalizes raw candidate and job records into flat
// feature structs used by the scoring engine. Extraction never fails:
// missing optional fields fall back to safe defaults (empty sets, zero
// experience, no education).
package features

import (
	"strings"

	"github.com/talentbridge/matchengine/internal/types"
)

// educationKeywords maps level-text substrings to education ordinals.
// Matching is substring-based because upstream records carry free text
// like "Bachelor of Science" or "high school diploma (science)".
var educationKeywords = []struct {
	keyword string
	level   types.EducationLevel
}{
	{"phd", types.EducationPhD},
	{"doctorate", types.EducationPhD},
	{"master", types.EducationMaster},
	{"bachelor", types.EducationBachelor},
	{"diploma", types.EducationDiploma},
	{"high school", types.EducationSecondary},
	{"secondary", types.EducationSecondary},
}

// ExtractCandidate normalizes a raw candidate record into a
// CandidateFeatures struct. Skills from the three independent sources
// (structured skills, software, free-text other skills) are merged
// into one lower-cased, deduplicated set.
func ExtractCandidate(c *types.Candidate) types.CandidateFeatures {
	if c == nil {
		c = &types.Candidate{}
	}

	skills := make([]string, 0, len(c.ComputerSkills)+len(c.SoftwareSkills)+len(c.OtherSkills))
	seen := make(map[string]bool)
	addSkill := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		skills = append(skills, s)
	}
	for _, cs := range c.ComputerSkills {
		addSkill(cs.Skill)
	}
	for _, ss := range c.SoftwareSkills {
		addSkill(ss.Software)
	}
	for _, os := range c.OtherSkills {
		addSkill(os)
	}

	areas := make([]types.ExperienceArea, 0, len(c.ExperienceList))
	for _, exp := range c.ExperienceList {
		areas = append(areas, types.ExperienceArea{
			Position: strings.ToLower(exp.Position),
			Company:  strings.ToLower(exp.Company),
			WorkType: exp.WorkType,
			JobLevel: strings.ToLower(exp.JobLevel),
		})
	}

	education := make([]types.EducationEntry, 0, len(c.EducationList))
	for _, edu := range c.EducationList {
		education = append(education, types.EducationEntry{
			Level:       strings.ToLower(edu.Level),
			Degree:      strings.ToLower(edu.Degree),
			Institution: strings.ToLower(edu.Institution),
		})
	}

	interests := make([]string, 0, len(c.Interests))
	seenInterest := make(map[string]bool)
	for _, in := range c.Interests {
		in = strings.ToLower(strings.TrimSpace(in))
		if in == "" || seenInterest[in] {
			continue
		}
		seenInterest[in] = true
		interests = append(interests, in)
	}

	languages := make([]types.LanguageSkill, 0, len(c.Languages))
	for _, lang := range c.Languages {
		if lang.Language == "" {
			continue
		}
		languages = append(languages, types.LanguageSkill{
			Language:    strings.ToLower(lang.Language),
			Proficiency: lang.Proficiency,
		})
	}

	hasCerts := false
	for _, t := range c.TrainingList {
		if t.HasCertificate {
			hasCerts = true
			break
		}
	}

	return types.CandidateFeatures{
		Skills:           skills,
		TotalExperience:  totalExperienceYears(c.ExperienceList),
		ExperienceAreas:  areas,
		Education:        education,
		HighestEducation: highestEducation(c.EducationList),
		Location: types.Location{
			City:    strings.ToLower(c.City),
			Country: strings.ToLower(c.Country),
		},
		Specialization:  strings.ToLower(c.Specialization),
		Interests:       interests,
		Languages:       languages,
		TrainingCount:   len(c.TrainingList),
		HasCertificates: hasCerts,
		DesiredJobType:  strings.ToLower(c.DesiredJobType),
		ExpectedSalary:  c.ExpectedSalary,
	}
}

// totalExperienceYears sums the month difference of each (from, to)
// interval, clamped at zero per interval, and converts to years with
// one decimal of precision. Intervals with a missing endpoint are
// skipped rather than guessed.
func totalExperienceYears(list []types.Experience) float64 {
	totalMonths := 0
	for _, exp := range list {
		if exp.From.IsZero() || exp.To.IsZero() {
			continue
		}
		months := (exp.To.Year()-exp.From.Year())*12 + int(exp.To.Month()) - int(exp.From.Month())
		if months > 0 {
			totalMonths += months
		}
	}
	years := float64(totalMonths) / 12.0
	// one decimal of precision
	return float64(int(years*10+0.5)) / 10
}

// highestEducation folds the education list to the maximum ordinal
// among entries whose level text contains a known keyword. The fold is
// idempotent: re-extraction of the same list yields the same ordinal.
func highestEducation(list []types.Education) types.EducationLevel {
	highest := types.EducationNone
	for _, edu := range list {
		level := strings.ToLower(edu.Level)
		for _, kw := range educationKeywords {
			if strings.Contains(level, kw.keyword) && kw.level > highest {
				highest = kw.level
			}
		}
	}
	return highest
}
