// Package types defines the shared domain structures for candidate/job
// matching: raw records, extracted feature structs, match results,
// persisted recommendations and interaction events.
package types

import (
	"time"

	"github.com/google/uuid"
)

// WorkType constants for experience entries
const (
	WorkTypeFullTime = "full_time"
	WorkTypePartTime = "part_time"
	WorkTypeContract = "contract"
	WorkTypeRemote   = "remote"
)

// ComputerSkill is a structured skill entry on a candidate profile
type ComputerSkill struct {
	Skill string `json:"skill"`
	Level string `json:"level,omitempty"`
}

// SoftwareSkill is a software/tool entry on a candidate profile
type SoftwareSkill struct {
	Software string `json:"software"`
	Level    string `json:"level,omitempty"`
}

// Experience is a single work-history entry. From/To may be zero when
// the upstream profile is partially filled.
type Experience struct {
	Position string    `json:"position"`
	Company  string    `json:"company"`
	WorkType string    `json:"work_type,omitempty"`
	JobLevel string    `json:"job_level,omitempty"`
	From     time.Time `json:"from,omitempty"`
	To       time.Time `json:"to,omitempty"`
}

// Education is a single education entry
type Education struct {
	Level       string `json:"level"`
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
}

// Language is a spoken-language entry with proficiency
// (basic, intermediate, advanced, native)
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

// Training is a completed training/course entry
type Training struct {
	Name           string `json:"name"`
	HasCertificate bool   `json:"has_certificate"`
}

// Candidate is a raw candidate record as stored. Any field may be
// empty; feature extraction applies safe defaults. Sensitive fields
// are redacted upstream and never reach this struct.
type Candidate struct {
	ID             uuid.UUID       `json:"id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Email          string          `json:"email"`
	City           string          `json:"city,omitempty"`
	Country        string          `json:"country,omitempty"`
	Specialization string          `json:"specialization,omitempty"`
	ComputerSkills []ComputerSkill `json:"computer_skills,omitempty"`
	SoftwareSkills []SoftwareSkill `json:"software_skills,omitempty"`
	OtherSkills    []string        `json:"other_skills,omitempty"`
	ExperienceList []Experience    `json:"experience_list,omitempty"`
	EducationList  []Education     `json:"education_list,omitempty"`
	Interests      []string        `json:"interests,omitempty"`
	Languages      []Language      `json:"languages,omitempty"`
	TrainingList   []Training      `json:"training_list,omitempty"`

	// Matching preferences (optional, drive the salary/jobType criteria)
	DesiredJobType string  `json:"desired_job_type,omitempty"`
	ExpectedSalary float64 `json:"expected_salary,omitempty"`

	AccountDisabled bool      `json:"account_disabled,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	LastLogin       time.Time `json:"last_login,omitempty"`
}

// FullName returns the candidate's display name
func (c *Candidate) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
