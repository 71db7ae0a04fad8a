package types

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation item types
const (
	ItemTypeCandidate = "candidate"
	ItemTypeJob       = "job"
)

// Recommendation algorithm identifiers, persisted for auditability
const (
	AlgorithmContentBased = "content_based"
	AlgorithmProactive    = "proactive_recommendation"
)

// DefaultRecommendationTTL bounds how long a persisted set stays active
const DefaultRecommendationTTL = 7 * 24 * time.Hour

// Recommendation is a persisted, time-boxed ranked result linking an
// owner (usually a company) to one scored item. At most one active
// set exists per (owner, item type, source key); replacement deletes
// the previous set before inserting the new one.
type Recommendation struct {
	ID           uuid.UUID          `json:"id"`
	OwnerID      uuid.UUID          `json:"owner_id"`
	ItemType     string             `json:"item_type"`
	ItemID       uuid.UUID          `json:"item_id"`
	Score        int                `json:"score"`
	Confidence   float64            `json:"confidence"`
	Reasons      []Reason           `json:"reasons,omitempty"`
	Breakdown    map[string]float64 `json:"breakdown,omitempty"`
	Algorithm    string             `json:"algorithm"`
	ModelVersion string             `json:"model_version"`
	Ranking      int                `json:"ranking"`
	SourceKey    string             `json:"source_key"`
	CreatedAt    time.Time          `json:"created_at"`
	ExpiresAt    time.Time          `json:"expires_at"`
}
