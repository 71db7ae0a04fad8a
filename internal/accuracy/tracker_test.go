package accuracy

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talentbridge/matchengine/internal/store/memstore"
	"github.com/talentbridge/matchengine/internal/types"
)

func newTestTracker(mem *memstore.Store) *Tracker {
	return NewTracker(mem, mem, zap.NewNop())
}

// seedRecommendations stores n job recommendations for the user, all
// with the given score and age, and returns their item ids
func seedRecommendations(t *testing.T, mem *memstore.Store, userID uuid.UUID, n, score int, age time.Duration) []uuid.UUID {
	t.Helper()

	now := time.Now()
	recs := make([]types.Recommendation, 0, n)
	itemIDs := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		itemID := uuid.New()
		itemIDs = append(itemIDs, itemID)
		recs = append(recs, types.Recommendation{
			ID:        uuid.New(),
			OwnerID:   userID,
			ItemType:  types.ItemTypeJob,
			ItemID:    itemID,
			Score:     score,
			Algorithm: types.AlgorithmContentBased,
			SourceKey: "seed:" + uuid.NewString(),
			CreatedAt: now.Add(-age),
			ExpiresAt: now.Add(types.DefaultRecommendationTTL),
		})
	}
	require.NoError(t, mem.ReplaceRecommendations(context.Background(), userID, types.ItemTypeJob, "seed:"+uuid.NewString(), recs))
	return itemIDs
}

func recordAction(t *testing.T, mem *memstore.Store, userID, itemID uuid.UUID, action types.Action, age time.Duration) {
	t.Helper()
	require.NoError(t, mem.RecordInteraction(context.Background(), &types.Interaction{
		UserID:    userID,
		ItemType:  types.ItemTypeJob,
		ItemID:    itemID,
		Action:    action,
		Timestamp: time.Now().Add(-age),
	}))
}

func TestMeasure_WeightedAccuracyAndInteractionRate(t *testing.T) {
	mem := memstore.New()
	userID := uuid.New()
	items := seedRecommendations(t, mem, userID, 10, 70, 24*time.Hour)

	// two of each: apply, like, save, view, untouched
	pattern := []types.Action{types.ActionApply, types.ActionLike, types.ActionSave, types.ActionView}
	for i, action := range pattern {
		recordAction(t, mem, userID, items[i*2], action, time.Hour)
		recordAction(t, mem, userID, items[i*2+1], action, time.Hour)
	}

	tracker := newTestTracker(mem)
	m, err := tracker.Measure(context.Background(), userID, types.ItemTypeJob, 0)
	require.NoError(t, err)

	assert.Equal(t, StatusOK, m.Status)
	assert.Equal(t, 10, m.SampleSize)
	assert.InDelta(t, 0.56, m.Overall, 0.001)
	assert.InDelta(t, 0.8, m.InteractionRate, 0.001)
	assert.Equal(t, LevelAcceptable, m.Level)
	assert.Empty(t, m.Suggestions)

	bucket, ok := m.ByScoreBucket["60-79"]
	require.True(t, ok)
	assert.Equal(t, 10, bucket.Count)
	assert.InDelta(t, 0.56, bucket.Accuracy, 0.001)
}

func TestMeasure_BucketsByWinningAction(t *testing.T) {
	mem := memstore.New()
	userID := uuid.New()
	items := seedRecommendations(t, mem, userID, 10, 70, 24*time.Hour)

	recordAction(t, mem, userID, items[0], types.ActionApply, time.Hour)
	recordAction(t, mem, userID, items[1], types.ActionApply, time.Hour)
	recordAction(t, mem, userID, items[2], types.ActionView, time.Hour)

	tracker := newTestTracker(mem)
	m, err := tracker.Measure(context.Background(), userID, types.ItemTypeJob, 0)
	require.NoError(t, err)

	require.Len(t, m.ByAction, 2)
	apply, ok := m.ByAction[types.ActionApply]
	require.True(t, ok)
	assert.Equal(t, 2, apply.Count)
	assert.InDelta(t, 1.0, apply.Accuracy, 0.001)

	view, ok := m.ByAction[types.ActionView]
	require.True(t, ok)
	assert.Equal(t, 1, view.Count)
	assert.InDelta(t, 0.3, view.Accuracy, 0.001)

	_, ok = m.ByAction[types.ActionSave]
	assert.False(t, ok, "actions nobody took stay out of the breakdown")
}

func TestMeasure_RoundsOverallToTwoDecimals(t *testing.T) {
	mem := memstore.New()
	userID := uuid.New()
	items := seedRecommendations(t, mem, userID, 12, 70, 24*time.Hour)

	// 2.8 weight over 12 items = 0.2333... before rounding
	pattern := []types.Action{types.ActionApply, types.ActionLike, types.ActionSave, types.ActionView}
	for i, action := range pattern {
		recordAction(t, mem, userID, items[i], action, time.Hour)
	}

	tracker := newTestTracker(mem)
	m, err := tracker.Measure(context.Background(), userID, types.ItemTypeJob, 0)
	require.NoError(t, err)

	assert.Equal(t, 0.23, m.Overall)
	assert.Equal(t, 0.33, m.InteractionRate)
}

func TestMeasure_StrongestActionWinsPerItem(t *testing.T) {
	mem := memstore.New()
	userID := uuid.New()
	items := seedRecommendations(t, mem, userID, 10, 70, 24*time.Hour)

	// the same item viewed first, then applied to
	recordAction(t, mem, userID, items[0], types.ActionView, 2*time.Hour)
	recordAction(t, mem, userID, items[0], types.ActionApply, time.Hour)

	tracker := newTestTracker(mem)
	m, err := tracker.Measure(context.Background(), userID, types.ItemTypeJob, 0)
	require.NoError(t, err)

	assert.InDelta(t, 0.1, m.Overall, 0.001, "one apply across ten items")
	assert.InDelta(t, 0.1, m.InteractionRate, 0.001)
}

func TestMeasure_IgnoreCarriesNoWeight(t *testing.T) {
	mem := memstore.New()
	userID := uuid.New()
	items := seedRecommendations(t, mem, userID, 10, 70, 24*time.Hour)
	recordAction(t, mem, userID, items[0], types.ActionIgnore, time.Hour)

	tracker := newTestTracker(mem)
	m, err := tracker.Measure(context.Background(), userID, types.ItemTypeJob, 0)
	require.NoError(t, err)

	assert.Zero(t, m.Overall)
	assert.Zero(t, m.InteractionRate)
}

func TestMeasure_InsufficientData(t *testing.T) {
	mem := memstore.New()
	userID := uuid.New()
	seedRecommendations(t, mem, userID, MinSampleSize-1, 70, 24*time.Hour)

	tracker := newTestTracker(mem)
	m, err := tracker.Measure(context.Background(), userID, types.ItemTypeJob, 0)
	require.NoError(t, err, "thin history is a status, not an error")

	assert.Equal(t, StatusInsufficientData, m.Status)
	assert.Equal(t, MinSampleSize-1, m.SampleSize)
	assert.Zero(t, m.Overall)
}

func TestMeasure_SuggestsForLowInteractionRate(t *testing.T) {
	mem := memstore.New()
	userID := uuid.New()
	seedRecommendations(t, mem, userID, 10, 85, 24*time.Hour)

	tracker := newTestTracker(mem)
	m, err := tracker.Measure(context.Background(), userID, types.ItemTypeJob, 0)
	require.NoError(t, err)

	assert.Equal(t, LevelPoor, m.Level)
	require.NotEmpty(t, m.Suggestions)
	joined := ""
	for _, s := range m.Suggestions {
		joined += s + "\n"
	}
	assert.Contains(t, joined, "no interaction")
	assert.Contains(t, joined, "minimum score floor")
}

func TestLevelFor_Thresholds(t *testing.T) {
	tests := []struct {
		overall float64
		want    string
	}{
		{0.80, LevelExcellent},
		{0.75, LevelExcellent},
		{0.70, LevelGood},
		{0.60, LevelGood},
		{0.50, LevelAcceptable},
		{0.45, LevelAcceptable},
		{0.30, LevelPoor},
		{0, LevelPoor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, levelFor(tt.overall), "overall %v", tt.overall)
	}
}

func TestClassifyTrend_Vectors(t *testing.T) {
	tests := []struct {
		name          string
		accuracies    []float64
		wantDirection string
		wantChange    float64
	}{
		{"improving", []float64{0.60, 0.65, 0.72}, TrendImproving, 20},
		{"declining", []float64{0.72, 0.65, 0.60}, TrendDeclining, -16.667},
		{"stable", []float64{0.60, 0.62, 0.63}, TrendStable, 5},
		{"single point", []float64{0.60}, TrendStable, 0},
		{"zero baseline", []float64{0, 0, 0.5}, TrendImproving, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := make([]TrendPoint, 0, len(tt.accuracies))
			for _, a := range tt.accuracies {
				points = append(points, TrendPoint{Accuracy: a})
			}

			direction, change := classifyTrend(points)

			assert.Equal(t, tt.wantDirection, direction)
			assert.InDelta(t, tt.wantChange, change, 0.01)
		})
	}
}

func TestTrend_SamplesEachWindow(t *testing.T) {
	mem := memstore.New()
	userID := uuid.New()

	// recent recommendations nobody touched, older ones applied to
	seedRecommendations(t, mem, userID, 2, 70, 3*24*time.Hour)
	older := seedRecommendations(t, mem, userID, 2, 70, 20*24*time.Hour)
	for _, itemID := range older {
		recordAction(t, mem, userID, itemID, types.ActionApply, 20*24*time.Hour)
	}

	tracker := newTestTracker(mem)
	report, err := tracker.Trend(context.Background(), userID, types.ItemTypeJob, nil)
	require.NoError(t, err)

	require.Len(t, report.Points, len(DefaultTrendWindows))
	assert.Equal(t, 7, report.Points[0].WindowDays)
	assert.Equal(t, 30, report.Points[2].WindowDays)
	assert.Equal(t, 2, report.Points[0].SampleSize)
	assert.Equal(t, 4, report.Points[2].SampleSize)
	assert.Zero(t, report.Points[0].Accuracy)
	assert.InDelta(t, 0.5, report.Points[2].Accuracy, 0.001)
	assert.Equal(t, TrendImproving, report.Direction)
}

func TestSystem_AveragesMeasurableUsers(t *testing.T) {
	mem := memstore.New()
	ctx := context.Background()

	engaged := uuid.New()
	items := seedRecommendations(t, mem, engaged, 10, 70, 24*time.Hour)
	for _, itemID := range items {
		recordAction(t, mem, engaged, itemID, types.ActionApply, time.Hour)
	}

	thin := uuid.New()
	thinItems := seedRecommendations(t, mem, thin, 3, 70, 24*time.Hour)
	recordAction(t, mem, thin, thinItems[0], types.ActionView, time.Hour)

	tracker := newTestTracker(mem)
	sys, err := tracker.System(ctx, types.ItemTypeJob, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, sys.UsersMeasured)
	assert.Equal(t, 1, sys.UsersSkipped)
	assert.InDelta(t, 1.0, sys.Overall, 0.001)
	assert.Equal(t, LevelExcellent, sys.Level)
}

func TestSystem_DistributionAndInsights(t *testing.T) {
	mem := memstore.New()
	ctx := context.Background()

	// one user applies to everything, another never interacts
	engaged := uuid.New()
	for _, itemID := range seedRecommendations(t, mem, engaged, 10, 70, 24*time.Hour) {
		recordAction(t, mem, engaged, itemID, types.ActionApply, time.Hour)
	}

	idle := uuid.New()
	items := seedRecommendations(t, mem, idle, 10, 70, 24*time.Hour)
	recordAction(t, mem, idle, items[0], types.ActionView, time.Hour)

	tracker := newTestTracker(mem)
	sys, err := tracker.System(ctx, types.ItemTypeJob, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, sys.UsersMeasured)
	assert.Equal(t, 1, sys.Distribution[LevelExcellent])
	assert.Equal(t, 1, sys.Distribution[LevelPoor])
	assert.Zero(t, sys.Distribution[LevelGood])
	assert.Equal(t, 50, sys.DistributionPct[LevelExcellent])
	assert.Equal(t, 50, sys.DistributionPct[LevelPoor])

	joined := ""
	for _, in := range sys.Insights {
		joined += in + "\n"
	}
	assert.Contains(t, joined, "poor-accuracy", "half the users land in the poor band")
}

func TestSystem_NoMeasurableUsers(t *testing.T) {
	mem := memstore.New()

	thin := uuid.New()
	items := seedRecommendations(t, mem, thin, 3, 70, 24*time.Hour)
	recordAction(t, mem, thin, items[0], types.ActionView, time.Hour)

	tracker := newTestTracker(mem)
	sys, err := tracker.System(context.Background(), types.ItemTypeJob, 0, 0)
	require.NoError(t, err)

	assert.Zero(t, sys.UsersMeasured)
	assert.Equal(t, LevelPoor, sys.Level)
	require.NotEmpty(t, sys.Insights)
	assert.Contains(t, sys.Insights[0], "enough recommendation history")
}
