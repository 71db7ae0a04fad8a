package ranking

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/matchengine/internal/store/memstore"
)

func TestCompare_RejectsBadGroupSizes(t *testing.T) {
	mem := newComparisonFixture(t)
	svc := newTestService(t, mem.store)

	_, err := svc.Compare(context.Background(), mem.jobID, []uuid.UUID{mem.strongID})
	assert.Error(t, err, "one candidate is not a comparison")

	six := make([]uuid.UUID, 6)
	for i := range six {
		six[i] = uuid.New()
	}
	_, err = svc.Compare(context.Background(), mem.jobID, six)
	assert.Error(t, err)
}

func TestCompare_OrdersEntriesByScore(t *testing.T) {
	fix := newComparisonFixture(t)
	svc := newTestService(t, fix.store)

	cmp, err := svc.Compare(context.Background(), fix.jobID, []uuid.UUID{fix.weakID, fix.strongID})
	require.NoError(t, err)

	require.Len(t, cmp.Entries, 2)
	assert.Equal(t, fix.strongID, cmp.Entries[0].CandidateID)
	assert.GreaterOrEqual(t, cmp.Entries[0].Score, cmp.Entries[1].Score)
	assert.NotEmpty(t, cmp.Entries[0].Assessment)
}

func TestCompare_CallsOutLargeGaps(t *testing.T) {
	fix := newComparisonFixture(t)
	svc := newTestService(t, fix.store)

	cmp, err := svc.Compare(context.Background(), fix.jobID, []uuid.UUID{fix.weakID, fix.strongID})
	require.NoError(t, err)

	// strong has 6 more years and a bachelor against nothing
	assert.NotEmpty(t, cmp.KeyDifferences)
	joined := ""
	for _, d := range cmp.KeyDifferences {
		joined += d + "\n"
	}
	assert.Contains(t, joined, "experience")
	assert.Contains(t, joined, "education")
}

func TestCompare_GapsScopedToTopTwo(t *testing.T) {
	fix := newComparisonFixture(t)

	// a twin of the strongest candidate takes second place, pushing
	// the weak candidate's gaps out of the top pair
	twin := strongRecord()
	fix.store.AddCandidate(twin)

	svc := newTestService(t, fix.store)
	cmp, err := svc.Compare(context.Background(), fix.jobID,
		[]uuid.UUID{fix.weakID, fix.strongID, twin.ID})
	require.NoError(t, err)

	require.Len(t, cmp.Entries, 3)
	assert.Equal(t, fix.weakID, cmp.Entries[2].CandidateID)
	assert.Empty(t, cmp.KeyDifferences, "identical top candidates leave nothing to call out")
}

func TestCompare_EntriesCarryProfileColumns(t *testing.T) {
	fix := newComparisonFixture(t)
	svc := newTestService(t, fix.store)

	cmp, err := svc.Compare(context.Background(), fix.jobID, []uuid.UUID{fix.weakID, fix.strongID})
	require.NoError(t, err)

	top := cmp.Entries[0]
	assert.NotEmpty(t, top.Breakdown, "per-criterion breakdown rides along")
	assert.NotEmpty(t, top.Strengths)
	assert.Zero(t, top.TrainingCount)
	assert.Zero(t, top.Languages)

	bottom := cmp.Entries[1]
	assert.NotEmpty(t, bottom.Weaknesses, "the weak candidate's gaps are listed per entry")
}

func TestCompare_LowAverageRecommendsWiderSearch(t *testing.T) {
	fix := newComparisonFixture(t)
	svc := newTestService(t, fix.store)

	cmp, err := svc.Compare(context.Background(), fix.jobID, []uuid.UUID{fix.weakID, fix.strongID})
	require.NoError(t, err)

	// both scores sit below 70, average below 50
	joined := ""
	for _, r := range cmp.Recommendations {
		joined += r + "\n"
	}
	assert.Contains(t, joined, "widening the search")
}

type comparisonFixture struct {
	store    *memstore.Store
	jobID    uuid.UUID
	strongID uuid.UUID
	weakID   uuid.UUID
}

func newComparisonFixture(t *testing.T) *comparisonFixture {
	t.Helper()

	mem := memstore.New()
	job := testJob(uuid.New())
	mem.AddJob(job)

	strong := strongRecord()
	weak := weakRecord()
	mem.AddCandidate(strong)
	mem.AddCandidate(weak)

	return &comparisonFixture{
		store:    mem,
		jobID:    job.ID,
		strongID: strong.ID,
		weakID:   weak.ID,
	}
}
