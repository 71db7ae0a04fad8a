package types

import (
	"time"

	"github.com/google/uuid"
)

// Job status constants
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
	JobStatusDraft  = "draft"
)

// Job is a raw job posting record as stored
type Job struct {
	ID           uuid.UUID `json:"id"`
	CompanyID    uuid.UUID `json:"company_id"`
	CompanyName  string    `json:"company_name,omitempty"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Requirements string    `json:"requirements,omitempty"`
	Location     string    `json:"location,omitempty"`
	JobType      string    `json:"job_type,omitempty"`
	PostingType  string    `json:"posting_type,omitempty"`
	Salary       float64   `json:"salary,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
