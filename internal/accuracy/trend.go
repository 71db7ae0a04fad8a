package accuracy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Trend directions
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// trendStableDelta is the accuracy delta below which the trend reads
// as stable
const trendStableDelta = 0.05

// DefaultTrendWindows are the nested lookbacks a trend samples,
// shortest first
var DefaultTrendWindows = []time.Duration{
	7 * 24 * time.Hour,
	14 * 24 * time.Hour,
	30 * 24 * time.Hour,
}

// TrendPoint is one sampled accuracy value
type TrendPoint struct {
	WindowDays int     `json:"window_days"`
	SampleSize int     `json:"sample_size"`
	Accuracy   float64 `json:"accuracy"`
}

// TrendReport tracks how accuracy moves across the sampled windows
type TrendReport struct {
	UserID        uuid.UUID    `json:"user_id"`
	Points        []TrendPoint `json:"points"`
	Direction     string       `json:"direction"`
	ChangePercent float64      `json:"change_percent"`
}

// Trend samples accuracy over each window and classifies the
// movement between the first and last sample. Nil windows fall back
// to DefaultTrendWindows.
func (t *Tracker) Trend(ctx context.Context, userID uuid.UUID, itemType string, windows []time.Duration) (*TrendReport, error) {
	if len(windows) == 0 {
		windows = DefaultTrendWindows
	}

	points := make([]TrendPoint, 0, len(windows))
	for _, window := range windows {
		accuracy, sample, err := t.windowAccuracy(ctx, userID, itemType, window)
		if err != nil {
			return nil, err
		}
		points = append(points, TrendPoint{
			WindowDays: int(window / (24 * time.Hour)),
			SampleSize: sample,
			Accuracy:   accuracy,
		})
	}

	direction, change := classifyTrend(points)
	report := &TrendReport{
		UserID:        userID,
		Points:        points,
		Direction:     direction,
		ChangePercent: change,
	}

	t.log.Debug("computed accuracy trend",
		zap.String("user_id", userID.String()),
		zap.String("direction", direction),
		zap.Float64("change_percent", change))
	return report, nil
}

// windowAccuracy is the unguarded mean interaction weight over one
// window; trends tolerate small samples that Measure would reject
func (t *Tracker) windowAccuracy(ctx context.Context, userID uuid.UUID, itemType string, window time.Duration) (float64, int, error) {
	since := time.Now().Add(-window)
	recs, err := t.recs.ListRecommendationsSince(ctx, userID, itemType, since)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load recommendation history: %w", err)
	}
	if len(recs) == 0 {
		return 0, 0, nil
	}

	best, err := t.bestInteractions(ctx, userID, itemType, recs, since)
	if err != nil {
		return 0, 0, err
	}

	total := 0.0
	for _, rec := range recs {
		total += best[rec.ItemID].weight
	}
	return total / float64(len(recs)), len(recs), nil
}

// classifyTrend compares the last sample against the first
func classifyTrend(points []TrendPoint) (string, float64) {
	if len(points) < 2 {
		return TrendStable, 0
	}

	first := points[0].Accuracy
	last := points[len(points)-1].Accuracy
	delta := last - first

	change := 0.0
	if first > 0 {
		change = delta / first * 100
	}

	switch {
	case delta > trendStableDelta:
		return TrendImproving, change
	case delta < -trendStableDelta:
		return TrendDeclining, change
	default:
		return TrendStable, change
	}
}
