package mining

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

func newTestService(mem *memstore.Store) *Service {
	return NewService(mem, mem, mem, NewMemoryCache(time.Minute), zap.NewNop())
}

func companyJob(companyID uuid.UUID, title, requirements string, age time.Duration) types.Job {
	return types.Job{
		ID:           uuid.New(),
		CompanyID:    companyID,
		Title:        title,
		Requirements: requirements,
		Location:     "Riyadh, Saudi Arabia",
		Status:       "active",
		CreatedAt:    time.Now().Add(-age),
	}
}

func fittingCandidate() types.Candidate {
	return types.Candidate{
		ID:        uuid.New(),
		FirstName: "Lina",
		LastName:  "Aziz",
		City:      "Riyadh",
		Country:   "Saudi Arabia",
		ComputerSkills: []types.ComputerSkill{
			{Skill: "JavaScript"}, {Skill: "React"}, {Skill: "Node.js"},
		},
		ExperienceList: []types.Experience{{
			Position: "developer",
			From:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			To:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
		EducationList: []types.Education{{Level: "Bachelor of Computer Science"}},
		CreatedAt:     time.Now(),
	}
}

func TestDemandProfile_AggregatesRecentPostings(t *testing.T) {
	mem := memstore.New()
	companyID := uuid.New()
	mem.AddJob(companyJob(companyID, "Frontend Developer", "javascript react required", 24*time.Hour))
	mem.AddJob(companyJob(companyID, "Backend Developer", "javascript node.js required", 48*time.Hour))

	svc := newTestService(mem)
	profile, err := svc.DemandProfile(context.Background(), companyID)
	require.NoError(t, err)

	assert.Equal(t, 2, profile.SampledPostings)
	require.NotEmpty(t, profile.Keywords)
	// "javascript" and "developer" appear in both postings and must
	// outrank single-posting keywords
	assert.Contains(t, profile.Keywords[:2], "javascript")
	assert.Equal(t, []string{"riyadh, saudi arabia"}, profile.Locations)
	assert.Equal(t, preferredMinYears, profile.MinExperience)
	assert.Equal(t, preferredMaxYears, profile.MaxExperience)
}

func TestDemandProfile_IgnoresOldPostings(t *testing.T) {
	mem := memstore.New()
	companyID := uuid.New()
	mem.AddJob(companyJob(companyID, "Frontend Developer", "javascript", 60*24*time.Hour))

	svc := newTestService(mem)
	profile, err := svc.DemandProfile(context.Background(), companyID)
	require.NoError(t, err)

	assert.Zero(t, profile.SampledPostings)
	assert.Empty(t, profile.Keywords)
}

func TestDemandProfile_CapsSampledPostings(t *testing.T) {
	mem := memstore.New()
	companyID := uuid.New()
	for i := 0; i < 8; i++ {
		mem.AddJob(companyJob(companyID, "Developer", "javascript", time.Duration(i)*time.Hour))
	}

	svc := newTestService(mem)
	profile, err := svc.DemandProfile(context.Background(), companyID)
	require.NoError(t, err)

	assert.Equal(t, maxSampledPostings, profile.SampledPostings)
}

func TestDemandProfile_ServedFromCache(t *testing.T) {
	mem := memstore.New()
	companyID := uuid.New()
	mem.AddJob(companyJob(companyID, "Developer", "javascript", time.Hour))

	svc := newTestService(mem)
	ctx := context.Background()

	first, err := svc.DemandProfile(ctx, companyID)
	require.NoError(t, err)

	// a new posting is invisible until the cache entry expires
	mem.AddJob(companyJob(companyID, "Designer", "figma", time.Minute))
	second, err := svc.DemandProfile(ctx, companyID)
	require.NoError(t, err)

	assert.Equal(t, first.SampledPostings, second.SampledPostings)
	assert.Equal(t, first.GeneratedAt, second.GeneratedAt)
}

func TestSuggestCandidates_ScoresAndPersists(t *testing.T) {
	mem := memstore.New()
	companyID := uuid.New()
	mem.AddJob(companyJob(companyID, "Frontend Developer", "javascript react node.js required", 24*time.Hour))

	cand := fittingCandidate()
	mem.AddCandidate(cand)

	svc := newTestService(mem)
	profile, suggestions, err := svc.SuggestCandidates(context.Background(), companyID)
	require.NoError(t, err)

	require.NotNil(t, profile)
	assert.Equal(t, 1, profile.SampledPostings)

	require.Len(t, suggestions, 1)
	sg := suggestions[0]
	assert.Equal(t, cand.ID, sg.CandidateID)
	assert.GreaterOrEqual(t, sg.Score, suggestMinScore)
	assert.NotEmpty(t, sg.Reasons)
	assert.Contains(t, sg.PotentialRoles, "senior positions")
	assert.True(t, sg.NewCandidate, "a freshly registered candidate is flagged as new")
	assert.GreaterOrEqual(t, sg.Confidence, 0.0)
	assert.LessOrEqual(t, sg.Confidence, 1.0)

	stored, err := mem.ListActiveRecommendations(context.Background(), companyID, types.ItemTypeCandidate, 0, 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, types.AlgorithmProactive, stored[0].Algorithm)
	assert.Equal(t, "proactive:"+companyID.String(), stored[0].SourceKey)
}

func TestSuggestCandidates_NoPostingsNoSuggestions(t *testing.T) {
	mem := memstore.New()
	mem.AddCandidate(fittingCandidate())

	svc := newTestService(mem)
	profile, suggestions, err := svc.SuggestCandidates(context.Background(), uuid.New())
	require.NoError(t, err)

	require.NotNil(t, profile)
	assert.Zero(t, profile.SampledPostings)
	assert.Empty(t, suggestions)
}

func TestSuggestCandidates_DropsLowDemandFit(t *testing.T) {
	mem := memstore.New()
	companyID := uuid.New()
	mem.AddJob(companyJob(companyID, "Frontend Developer", "javascript react node.js required", 24*time.Hour))

	unfit := types.Candidate{
		ID:             uuid.New(),
		FirstName:      "Karim",
		ComputerSkills: []types.ComputerSkill{{Skill: "JavaScript"}},
		CreatedAt:      time.Now(),
	}
	mem.AddCandidate(unfit)

	svc := newTestService(mem)
	_, suggestions, err := svc.SuggestCandidates(context.Background(), companyID)
	require.NoError(t, err)

	assert.Empty(t, suggestions, "a skills-only partial fit stays below the floor")
}

func TestSuggestCandidates_PartialFitCarriesReasons(t *testing.T) {
	mem := memstore.New()
	companyID := uuid.New()
	mem.AddJob(companyJob(companyID, "Frontend Developer", "javascript react node.js required", 24*time.Hour))

	// out of the 2-10 year range, diploma instead of bachelor/master:
	// both criteria award partial points and still explain themselves
	partial := fittingCandidate()
	partial.ExperienceList = []types.Experience{{
		Position: "developer",
		From:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
	partial.EducationList = []types.Education{{Level: "Diploma in Computing"}}
	mem.AddCandidate(partial)

	svc := newTestService(mem)
	_, suggestions, err := svc.SuggestCandidates(context.Background(), companyID)
	require.NoError(t, err)

	require.Len(t, suggestions, 1)
	reasonTypes := make(map[string]types.Strength)
	for _, r := range suggestions[0].Reasons {
		reasonTypes[r.Type] = r.Strength
	}
	assert.Equal(t, types.StrengthMedium, reasonTypes["experience"])
	assert.Equal(t, types.StrengthMedium, reasonTypes["education"])
}

func TestMemoryCache_Expires(t *testing.T) {
	cache := NewMemoryCache(time.Millisecond)
	profile := &DemandProfile{CompanyID: uuid.New(), SampledPostings: 1}

	require.NoError(t, cache.SetDemandProfile(context.Background(), profile))
	time.Sleep(5 * time.Millisecond)

	_, ok, err := cache.GetDemandProfile(context.Background(), profile.CompanyID)
	require.NoError(t, err)
	assert.False(t, ok)
}
