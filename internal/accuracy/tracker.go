// Package accuracy measures how well persisted recommendations line
// up with what users actually did. The strongest interaction a user
// had with a recommended item decides that item's accuracy weight;
// items nobody touched count fully against the score.
package accuracy

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentbridge/matchengine/internal/store"
	"github.com/talentbridge/matchengine/internal/types"
)

// Interaction weights, strongest action wins per item
var actionWeights = map[types.Action]float64{
	types.ActionApply: 1.0,
	types.ActionLike:  0.8,
	types.ActionSave:  0.7,
	types.ActionView:  0.3,
}

// Measurement bounds and quality levels
const (
	// MinSampleSize is the fewest recommendations a meaningful
	// measurement needs
	MinSampleSize = 10

	// DefaultWindow is the lookback for one measurement
	DefaultWindow = 30 * 24 * time.Hour

	levelExcellentFloor  = 0.75
	levelGoodFloor       = 0.60
	levelAcceptableFloor = 0.45
)

// Measurement statuses
const (
	StatusOK               = "ok"
	StatusInsufficientData = "insufficient_data"
)

// Accuracy levels
const (
	LevelExcellent  = "excellent"
	LevelGood       = "good"
	LevelAcceptable = "acceptable"
	LevelPoor       = "poor"
)

// scoreBuckets partition recommendations by their original score so
// miscalibrated bands stand out
var scoreBuckets = []struct {
	label string
	low   int
	high  int
}{
	{"80-100", 80, 100},
	{"60-79", 60, 79},
	{"40-59", 40, 59},
	{"20-39", 20, 39},
	{"0-19", 0, 19},
}

// BucketMetrics is the accuracy of one score band
type BucketMetrics struct {
	Count    int     `json:"count"`
	Accuracy float64 `json:"accuracy"`
}

// Metrics is one user's recommendation accuracy over a window
type Metrics struct {
	UserID          uuid.UUID                      `json:"user_id"`
	Status          string                         `json:"status"`
	SampleSize      int                            `json:"sample_size"`
	Overall         float64                        `json:"overall"`
	InteractionRate float64                        `json:"interaction_rate"`
	Level           string                         `json:"level"`
	ByScoreBucket   map[string]BucketMetrics       `json:"by_score_bucket,omitempty"`
	ByAction        map[types.Action]BucketMetrics `json:"by_action,omitempty"`
	Suggestions     []string                       `json:"suggestions,omitempty"`
}

// Tracker measures recommendation accuracy from the stores
type Tracker struct {
	recs store.RecommendationStore
	ints store.InteractionLog
	log  *zap.Logger
}

// NewTracker wires a tracker
func NewTracker(recs store.RecommendationStore, ints store.InteractionLog, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{recs: recs, ints: ints, log: log}
}

// Measure computes one user's accuracy over the window. Fewer than
// MinSampleSize recommendations yields an insufficient-data result,
// not an error.
func (t *Tracker) Measure(ctx context.Context, userID uuid.UUID, itemType string, window time.Duration) (*Metrics, error) {
	if window <= 0 {
		window = DefaultWindow
	}
	since := time.Now().Add(-window)

	recs, err := t.recs.ListRecommendationsSince(ctx, userID, itemType, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendation history: %w", err)
	}
	if len(recs) < MinSampleSize {
		return &Metrics{
			UserID:     userID,
			Status:     StatusInsufficientData,
			SampleSize: len(recs),
		}, nil
	}

	best, err := t.bestInteractions(ctx, userID, itemType, recs, since)
	if err != nil {
		return nil, err
	}

	total := 0.0
	interacted := 0
	bucketSums := make(map[string]float64)
	bucketCounts := make(map[string]int)
	actionSums := make(map[types.Action]float64)
	actionCounts := make(map[types.Action]int)
	for _, rec := range recs {
		b := best[rec.ItemID]
		total += b.weight
		if b.weight > 0 {
			interacted++
			actionSums[b.action] += b.weight
			actionCounts[b.action]++
		}
		label := bucketLabel(rec.Score)
		bucketSums[label] += b.weight
		bucketCounts[label]++
	}

	overall := round2(total / float64(len(recs)))
	rate := round2(float64(interacted) / float64(len(recs)))

	byBucket := make(map[string]BucketMetrics)
	for _, b := range scoreBuckets {
		if n := bucketCounts[b.label]; n > 0 {
			byBucket[b.label] = BucketMetrics{
				Count:    n,
				Accuracy: round2(bucketSums[b.label] / float64(n)),
			}
		}
	}
	byAction := make(map[types.Action]BucketMetrics, len(actionCounts))
	for action, n := range actionCounts {
		byAction[action] = BucketMetrics{
			Count:    n,
			Accuracy: round2(actionSums[action] / float64(n)),
		}
	}

	m := &Metrics{
		UserID:          userID,
		Status:          StatusOK,
		SampleSize:      len(recs),
		Overall:         overall,
		InteractionRate: rate,
		Level:           levelFor(overall),
		ByScoreBucket:   byBucket,
		ByAction:        byAction,
		Suggestions:     suggestions(overall, rate, byBucket),
	}

	t.log.Debug("measured recommendation accuracy",
		zap.String("user_id", userID.String()),
		zap.Int("sample_size", m.SampleSize),
		zap.Float64("overall", m.Overall))
	return m, nil
}

// bestInteraction is the winning interaction for one recommended item
type bestInteraction struct {
	weight float64
	action types.Action
}

// bestInteractions resolves each recommended item to its
// strongest-weighted interaction
func (t *Tracker) bestInteractions(ctx context.Context, userID uuid.UUID, itemType string, recs []types.Recommendation, since time.Time) (map[uuid.UUID]bestInteraction, error) {
	itemIDs := make([]uuid.UUID, 0, len(recs))
	for _, rec := range recs {
		itemIDs = append(itemIDs, rec.ItemID)
	}

	interactions, err := t.ints.ListInteractions(ctx, userID, itemType, itemIDs, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}

	best := make(map[uuid.UUID]bestInteraction, len(interactions))
	for _, in := range interactions {
		if w := actionWeights[in.Action]; w > best[in.ItemID].weight {
			best[in.ItemID] = bestInteraction{weight: w, action: in.Action}
		}
	}
	return best, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func bucketLabel(score int) string {
	for _, b := range scoreBuckets {
		if score >= b.low && score <= b.high {
			return b.label
		}
	}
	return scoreBuckets[len(scoreBuckets)-1].label
}

func levelFor(overall float64) string {
	switch {
	case overall >= levelExcellentFloor:
		return LevelExcellent
	case overall >= levelGoodFloor:
		return LevelGood
	case overall >= levelAcceptableFloor:
		return LevelAcceptable
	default:
		return LevelPoor
	}
}

// suggestions derives concrete follow-ups from the measurement shape
func suggestions(overall, rate float64, byBucket map[string]BucketMetrics) []string {
	var out []string
	if rate < 0.5 {
		out = append(out, "most recommendations receive no interaction; revisit targeting filters")
	}
	if top, ok := byBucket["80-100"]; ok && top.Accuracy < overall {
		out = append(out, "high-scoring recommendations underperform the average; review the weight profile")
	}
	if overall < levelAcceptableFloor {
		out = append(out, "overall accuracy is poor; consider raising the minimum score floor")
	}
	return out
}
