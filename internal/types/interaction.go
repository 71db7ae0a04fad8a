package types

import (
	"time"

	"github.com/google/uuid"
)

// Action is a recorded user action against a recommended item
type Action string

// Interaction actions, strongest intent first
const (
	ActionApply  Action = "apply"
	ActionLike   Action = "like"
	ActionSave   Action = "save"
	ActionView   Action = "view"
	ActionIgnore Action = "ignore"
)

// Interaction is one recorded user action against an item, used to
// retroactively judge recommendation quality
type Interaction struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ItemType  string    `json:"item_type"`
	ItemID    uuid.UUID `json:"item_id"`
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`

	// OriginalScore carries the recommendation score at interaction
	// time when the client reported it, zero otherwise
	OriginalScore int `json:"original_score,omitempty"`
}
