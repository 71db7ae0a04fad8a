package types

// EducationLevel is the ordinal scale for the highest completed
// education. Higher values strictly dominate lower ones.
type EducationLevel int

// Education ordinals, lowest to highest
const (
	EducationNone EducationLevel = iota
	EducationSecondary
	EducationDiploma
	EducationBachelor
	EducationMaster
	EducationPhD
)

// String returns the canonical lower-case label for the level
func (l EducationLevel) String() string {
	switch l {
	case EducationSecondary:
		return "secondary"
	case EducationDiploma:
		return "diploma"
	case EducationBachelor:
		return "bachelor"
	case EducationMaster:
		return "master"
	case EducationPhD:
		return "phd"
	default:
		return "none"
	}
}

// ExperienceArea is a normalized work-history entry used for
// title-overlap checks during scoring
type ExperienceArea struct {
	Position string `json:"position"`
	Company  string `json:"company"`
	WorkType string `json:"work_type,omitempty"`
	JobLevel string `json:"job_level,omitempty"`
}

// EducationEntry is a normalized education entry
type EducationEntry struct {
	Level       string `json:"level"`
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
}

// LanguageSkill is a normalized language entry
type LanguageSkill struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

// Location is a normalized candidate location
type Location struct {
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// CandidateFeatures is the fully-defaulted, immutable feature struct
// extracted from a raw candidate record. Instances are created per
// scoring call and never mutated after construction.
type CandidateFeatures struct {
	Skills           []string         `json:"skills"`
	TotalExperience  float64          `json:"total_experience"`
	ExperienceAreas  []ExperienceArea `json:"experience_areas"`
	Education        []EducationEntry `json:"education"`
	HighestEducation EducationLevel   `json:"highest_education"`
	Location         Location         `json:"location"`
	Specialization   string           `json:"specialization,omitempty"`
	Interests        []string         `json:"interests"`
	Languages        []LanguageSkill  `json:"languages"`
	TrainingCount    int              `json:"training_count"`
	HasCertificates  bool             `json:"has_certificates"`
	DesiredJobType   string           `json:"desired_job_type,omitempty"`
	ExpectedSalary   float64          `json:"expected_salary,omitempty"`
}

// JobFeatures is the feature struct extracted from a raw job posting
type JobFeatures struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Requirements string   `json:"requirements,omitempty"`
	Keywords     []string `json:"keywords"`
	Location     string   `json:"location,omitempty"`
	JobType      string   `json:"job_type,omitempty"`
	PostingType  string   `json:"posting_type,omitempty"`
	Salary       float64  `json:"salary,omitempty"`
}
