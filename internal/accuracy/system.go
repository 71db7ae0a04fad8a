package accuracy

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// DefaultSystemSample bounds how many active users a system
// measurement aggregates
const DefaultSystemSample = 20

// System insight thresholds
const (
	poorSharePercent      = 30
	lowInteractionRateBar = 0.3
)

// SystemMetrics aggregates accuracy across the most active users
type SystemMetrics struct {
	UsersMeasured      int            `json:"users_measured"`
	UsersSkipped       int            `json:"users_skipped"`
	Overall            float64        `json:"overall"`
	Level              string         `json:"level"`
	AvgInteractionRate float64        `json:"avg_interaction_rate"`
	Distribution       map[string]int `json:"distribution"`
	DistributionPct    map[string]int `json:"distribution_pct"`
	Insights           []string       `json:"insights,omitempty"`
}

// System measures the busiest users and averages their accuracy.
// Users without enough recommendation history are counted as skipped
// rather than dragging the average down.
func (t *Tracker) System(ctx context.Context, itemType string, window time.Duration, maxUsers int) (*SystemMetrics, error) {
	if window <= 0 {
		window = DefaultWindow
	}
	if maxUsers <= 0 {
		maxUsers = DefaultSystemSample
	}

	active, err := t.ints.MostActiveUsers(ctx, itemType, time.Now().Add(-window), maxUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to sample active users: %w", err)
	}

	total := 0.0
	rateTotal := 0.0
	measured := 0
	skipped := 0
	distribution := map[string]int{
		LevelExcellent:  0,
		LevelGood:       0,
		LevelAcceptable: 0,
		LevelPoor:       0,
	}
	for _, ua := range active {
		m, err := t.Measure(ctx, ua.UserID, itemType, window)
		if err != nil {
			return nil, err
		}
		if m.Status != StatusOK {
			skipped++
			continue
		}
		total += m.Overall
		rateTotal += m.InteractionRate
		distribution[m.Level]++
		measured++
	}

	sys := &SystemMetrics{
		UsersMeasured:   measured,
		UsersSkipped:    skipped,
		Distribution:    distribution,
		DistributionPct: distributionPct(distribution, measured),
	}
	if measured > 0 {
		sys.Overall = round2(total / float64(measured))
		sys.AvgInteractionRate = round2(rateTotal / float64(measured))
		sys.Level = levelFor(sys.Overall)
	} else {
		sys.Level = LevelPoor
	}
	sys.Insights = systemInsights(sys)

	t.log.Info("measured system accuracy",
		zap.String("item_type", itemType),
		zap.Int("users_measured", measured),
		zap.Int("users_skipped", skipped),
		zap.Float64("overall", sys.Overall))
	return sys, nil
}

// distributionPct converts per-level counts to whole percentages of
// the measured users
func distributionPct(distribution map[string]int, measured int) map[string]int {
	pct := make(map[string]int, len(distribution))
	for level, count := range distribution {
		if measured > 0 {
			pct[level] = int(math.Round(float64(count) / float64(measured) * 100))
		} else {
			pct[level] = 0
		}
	}
	return pct
}

// systemInsights derives readable findings from the aggregated shape
func systemInsights(sys *SystemMetrics) []string {
	var out []string
	if sys.UsersMeasured == 0 {
		return []string{"no users have enough recommendation history to measure"}
	}
	if sys.Overall >= levelExcellentFloor {
		out = append(out, "the system delivers excellent accuracy; most recommendations are relevant")
	} else if sys.Overall < levelAcceptableFloor {
		out = append(out, "system accuracy is low; the weight profiles need review")
	}
	if sys.DistributionPct[LevelPoor] > poorSharePercent {
		out = append(out, fmt.Sprintf("more than %d%% of measured users receive poor-accuracy recommendations", poorSharePercent))
	}
	if sys.AvgInteractionRate < lowInteractionRateBar {
		out = append(out, "interaction rate is low; recommendation quality may need improvement")
	}
	return out
}
