package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinProfiles_Valid(t *testing.T) {
	require.NoError(t, RankingProfile().Validate())
	require.NoError(t, MatchProfile().Validate())
}

func TestProfileValidate_WeightsMustSumToOne(t *testing.T) {
	p := Profile{
		Name: "broken",
		Criteria: []Criterion{
			{Name: CriterionSkills, Weight: 0.5, Scale: 1},
			{Name: CriterionExperience, Weight: 0.4, Scale: 1},
		},
	}

	err := p.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum")
}

func TestProfileValidate_RejectsUnknownCriterion(t *testing.T) {
	p := Profile{
		Name: "broken",
		Criteria: []Criterion{
			{Name: "charisma", Weight: 1.0, Scale: 1},
		},
	}

	assert.Error(t, p.Validate())
}

func TestProfileValidate_RejectsDuplicateCriterion(t *testing.T) {
	p := Profile{
		Name: "broken",
		Criteria: []Criterion{
			{Name: CriterionSkills, Weight: 0.5, Scale: 1},
			{Name: CriterionSkills, Weight: 0.5, Scale: 1},
		},
	}

	assert.Error(t, p.Validate())
}

func TestProfileValidate_RejectsZeroScale(t *testing.T) {
	p := Profile{
		Name: "broken",
		Criteria: []Criterion{
			{Name: CriterionSkills, Weight: 1.0},
		},
	}

	assert.Error(t, p.Validate())
}

func TestNewEngine_RejectsInvalidProfile(t *testing.T) {
	_, err := NewEngine(Profile{Name: "empty"})

	assert.Error(t, err)
}

func TestCustomProfile_AcceptedWithoutCodeChanges(t *testing.T) {
	p := Profile{
		Name: "skills-heavy",
		Criteria: []Criterion{
			{Name: CriterionSkills, Weight: 0.7, Scale: 1},
			{Name: CriterionExperience, Weight: 0.3, Scale: 2},
		},
	}

	require.NoError(t, p.Validate())
	_, err := NewEngine(p)
	require.NoError(t, err)
}
