package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talentbridge/matchengine/internal/store"
	"github.com/talentbridge/matchengine/internal/store/memstore"
	"github.com/talentbridge/matchengine/internal/types"
)

// fakeDispatcher records notifications and can fail chosen recipients
type fakeDispatcher struct {
	mu      sync.Mutex
	sent    []Notification
	failFor map[uuid.UUID]error
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{failFor: make(map[uuid.UUID]error)}
}

func (d *fakeDispatcher) Dispatch(_ context.Context, n Notification) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err, ok := d.failFor[n.RecipientID]; ok {
		return err
	}
	d.sent = append(d.sent, n)
	return nil
}

func postedJob(salary float64) types.Job {
	return types.Job{
		ID:           uuid.New(),
		CompanyID:    uuid.New(),
		CompanyName:  "acme corp",
		Title:        "Frontend Developer",
		Requirements: "javascript react node.js required",
		Location:     "Riyadh, Saudi Arabia",
		JobType:      "full_time",
		Salary:       salary,
		Status:       "active",
		CreatedAt:    time.Now(),
	}
}

func matchingCandidate() types.Candidate {
	return types.Candidate{
		ID:        uuid.New(),
		FirstName: "Sara",
		LastName:  "Nasser",
		City:      "Riyadh",
		Country:   "Saudi Arabia",
		ComputerSkills: []types.ComputerSkill{
			{Skill: "JavaScript"}, {Skill: "React"}, {Skill: "Node.js"},
		},
		ExperienceList: []types.Experience{{
			Position: "developer",
			From:     time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
			To:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
		EducationList:  []types.Education{{Level: "Master of Science"}},
		DesiredJobType: "full_time",
		ExpectedSalary: 10000,
		CreatedAt:      time.Now(),
	}
}

func newTestMatcher(t *testing.T, mem *memstore.Store, dispatcher Dispatcher) *Matcher {
	t.Helper()
	m, err := NewMatcher(mem, mem, dispatcher, zap.NewNop())
	require.NoError(t, err)
	return m
}

func TestNotifyMatching_DispatchesForStrongMatch(t *testing.T) {
	mem := memstore.New()
	job := postedJob(12000)
	mem.AddJob(job)
	cand := matchingCandidate()
	mem.AddCandidate(cand)

	dispatcher := newFakeDispatcher()
	m := newTestMatcher(t, mem, dispatcher)

	results, err := m.NotifyMatching(context.Background(), job.ID, Options{})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.True(t, results[0].Delivered)
	assert.GreaterOrEqual(t, results[0].Score, DefaultMinScore)

	require.Len(t, dispatcher.sent, 1)
	n := dispatcher.sent[0]
	assert.Equal(t, cand.ID, n.RecipientID)
	assert.Equal(t, job.ID, n.JobID)
	assert.Equal(t, "acme corp", n.CompanyName)
	assert.LessOrEqual(t, len(n.Reasons), maxPayloadReasons)
}

func TestNotifyMatching_HighScoreGetsHighPriority(t *testing.T) {
	mem := memstore.New()
	job := postedJob(12000)
	mem.AddJob(job)
	mem.AddCandidate(matchingCandidate())

	dispatcher := newFakeDispatcher()
	m := newTestMatcher(t, mem, dispatcher)

	_, err := m.NotifyMatching(context.Background(), job.ID, Options{})
	require.NoError(t, err)

	require.Len(t, dispatcher.sent, 1)
	assert.GreaterOrEqual(t, dispatcher.sent[0].Score, highPriorityScore)
	assert.Equal(t, PriorityHigh, dispatcher.sent[0].Priority)
}

func TestNotifyMatching_SkipsWeakMatches(t *testing.T) {
	mem := memstore.New()
	job := postedJob(12000)
	mem.AddJob(job)
	mem.AddCandidate(types.Candidate{
		ID:             uuid.New(),
		FirstName:      "Omar",
		ComputerSkills: []types.ComputerSkill{{Skill: "JavaScript"}},
		CreatedAt:      time.Now(),
	})

	dispatcher := newFakeDispatcher()
	m := newTestMatcher(t, mem, dispatcher)

	results, err := m.NotifyMatching(context.Background(), job.ID, Options{})
	require.NoError(t, err)

	assert.Empty(t, results)
	assert.Empty(t, dispatcher.sent)
}

func TestNotifyMatching_RecordsFailurePerRecipient(t *testing.T) {
	mem := memstore.New()
	job := postedJob(12000)
	mem.AddJob(job)

	failing := matchingCandidate()
	healthy := matchingCandidate()
	mem.AddCandidate(failing)
	mem.AddCandidate(healthy)

	dispatcher := newFakeDispatcher()
	dispatcher.failFor[failing.ID] = errors.New("broker unavailable")
	m := newTestMatcher(t, mem, dispatcher)

	results, err := m.NotifyMatching(context.Background(), job.ID, Options{})
	require.NoError(t, err, "one failed recipient must not abort the run")

	require.Len(t, results, 2)
	delivered := 0
	for _, r := range results {
		if r.RecipientID == failing.ID {
			assert.False(t, r.Delivered)
			assert.Contains(t, r.Error, "broker unavailable")
		} else {
			assert.True(t, r.Delivered)
			delivered++
		}
	}
	assert.Equal(t, 1, delivered)
	assert.Len(t, dispatcher.sent, 1)
}

func TestNotifyMatching_CapsNotices(t *testing.T) {
	mem := memstore.New()
	job := postedJob(12000)
	mem.AddJob(job)
	for i := 0; i < 6; i++ {
		mem.AddCandidate(matchingCandidate())
	}

	dispatcher := newFakeDispatcher()
	m := newTestMatcher(t, mem, dispatcher)

	results, err := m.NotifyMatching(context.Background(), job.ID, Options{MaxNotices: 3})
	require.NoError(t, err)

	assert.Len(t, results, 3)
	assert.Len(t, dispatcher.sent, 3)
}

func TestNotifyMatching_UnknownJob(t *testing.T) {
	m := newTestMatcher(t, memstore.New(), newFakeDispatcher())

	_, err := m.NotifyMatching(context.Background(), uuid.New(), Options{})

	assert.ErrorIs(t, err, store.ErrNotFound)
}
