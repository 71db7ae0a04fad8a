package types

// Strength qualifies how strongly a reason supports a match
type Strength string

// Reason strength values
const (
	StrengthLow    Strength = "low"
	StrengthMedium Strength = "medium"
	StrengthHigh   Strength = "high"
)

// Reason is a single human-readable explanation attached to a match.
// Reasons are emitted only when a criterion crosses its explanatory
// threshold; low-signal criteria contribute to the score silently.
type Reason struct {
	Type     string         `json:"type"`
	Message  string         `json:"message"`
	Strength Strength       `json:"strength"`
	Details  map[string]any `json:"details,omitempty"`
}

// MatchResult is the outcome of scoring one candidate against one
// job. Score is an integer in [0,100]; Confidence is in [0,1] and
// estimates how many independent criteria contributed, not
// statistical certainty. Breakdown holds the weighted per-criterion
// subscores, which sum to Score within rounding.
type MatchResult struct {
	Score      int                `json:"score"`
	Confidence float64            `json:"confidence"`
	Reasons    []Reason           `json:"reasons"`
	Breakdown  map[string]float64 `json:"breakdown"`
}
