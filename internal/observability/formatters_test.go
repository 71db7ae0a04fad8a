package observability

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/talentbridge/matchengine/internal/accuracy"
	"github.com/talentbridge/matchengine/internal/analysis"
	"github.com/talentbridge/matchengine/internal/mining"
	"github.com/talentbridge/matchengine/internal/ranking"
	"github.com/talentbridge/matchengine/internal/types"
)

func TestPrintRankedCandidates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	ranked := []ranking.RankedCandidate{
		{
			CandidateID: uuid.New(),
			Name:        "Sara Nasser",
			Ranking:     1,
			Result: types.MatchResult{
				Score:      82,
				Confidence: 0.75,
				Reasons: []types.Reason{
					{Type: "skills", Message: "strong skills match (80% of required skills)"},
				},
			},
		},
		{
			CandidateID: uuid.New(),
			Name:        "Omar Hadi",
			Ranking:     2,
			Result:      types.MatchResult{Score: 44, Confidence: 0.5},
		},
	}

	p.PrintRankedCandidates(ranked)
	output := buf.String()

	assert.Contains(t, output, "RANKED CANDIDATES")
	assert.Contains(t, output, "Sara Nasser")
	assert.Contains(t, output, "Score: 82")
	assert.Contains(t, output, "strong skills match")
	assert.Contains(t, output, "Omar Hadi")
}

func TestPrintRankedCandidates_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRankedCandidates(nil)

	assert.Contains(t, buf.String(), "no candidates above the score floor")
}

func TestPrintComparison(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	cmp := &ranking.Comparison{
		JobID: uuid.New(),
		Entries: []ranking.CompareEntry{
			{Name: "Sara Nasser", Score: 82, SkillsPercent: 80, Experience: 6, Education: "bachelor", Assessment: "strong"},
			{Name: "Omar Hadi", Score: 31, SkillsPercent: 10, Experience: 1, Education: "none", Assessment: "weak"},
		},
		KeyDifferences:  []string{"experience differs by 5.0 years"},
		Recommendations: []string{"scores vary widely; focus on the top-ranked candidates"},
	}

	p.PrintComparison(cmp)
	output := buf.String()

	assert.Contains(t, output, "CANDIDATE COMPARISON")
	assert.Contains(t, output, "Sara Nasser")
	assert.Contains(t, output, "experience differs by 5.0 years")
	assert.Contains(t, output, "scores vary widely")
}

func TestPrintComparison_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintComparison(nil)

	assert.Empty(t, buf.String())
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := &analysis.Report{
		Strengths: []analysis.Finding{
			{Category: analysis.CategorySkills, Message: "strong technical skills match", Strength: types.StrengthHigh},
		},
		Weaknesses: []analysis.Finding{
			{Category: analysis.CategoryTraining, Message: "no completed trainings on record", Strength: types.StrengthMedium},
		},
		Recommendations: []string{"complete trainings or courses relevant to the role"},
		Assessment:      analysis.AssessmentGood,
	}

	p.PrintReport(report)
	output := buf.String()

	assert.Contains(t, output, "CANDIDATE ANALYSIS")
	assert.Contains(t, output, "good")
	assert.Contains(t, output, "+ strong technical skills match")
	assert.Contains(t, output, "- no completed trainings on record")
	assert.Contains(t, output, "complete trainings")
}

func TestPrintSuggestions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	suggestions := []mining.Suggestion{
		{
			CandidateID:    uuid.New(),
			Name:           "Lina Aziz",
			Score:          75,
			Confidence:     0.75,
			PotentialRoles: []string{"senior positions"},
		},
	}

	p.PrintSuggestions(suggestions)
	output := buf.String()

	assert.Contains(t, output, "PROACTIVE SUGGESTIONS")
	assert.Contains(t, output, "Lina Aziz")
	assert.Contains(t, output, "Score: 75")
	assert.Contains(t, output, "senior positions")
}

func TestPrintAccuracy(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	m := &accuracy.Metrics{
		Status:          accuracy.StatusOK,
		SampleSize:      10,
		Overall:         0.56,
		InteractionRate: 0.8,
		Level:           accuracy.LevelAcceptable,
		ByScoreBucket: map[string]accuracy.BucketMetrics{
			"60-79": {Count: 10, Accuracy: 0.56},
		},
	}

	p.PrintAccuracy(m)
	output := buf.String()

	assert.Contains(t, output, "RECOMMENDATION ACCURACY")
	assert.Contains(t, output, "0.56 (acceptable)")
	assert.Contains(t, output, "80%")
	assert.Contains(t, output, "60-79")
}

func TestPrintAccuracy_InsufficientData(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAccuracy(&accuracy.Metrics{
		Status:     accuracy.StatusInsufficientData,
		SampleSize: 4,
	})

	assert.Contains(t, buf.String(), "insufficient data: 4 recommendations")
}

func TestPrintTrend(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTrend(&accuracy.TrendReport{
		Points: []accuracy.TrendPoint{
			{WindowDays: 7, Accuracy: 0.60, SampleSize: 12},
			{WindowDays: 14, Accuracy: 0.65, SampleSize: 25},
			{WindowDays: 30, Accuracy: 0.72, SampleSize: 48},
		},
		Direction:     accuracy.TrendImproving,
		ChangePercent: 20,
	})
	output := buf.String()

	assert.Contains(t, output, "ACCURACY TREND")
	assert.Contains(t, output, "improving")
	assert.Contains(t, output, "+20.0%")
}
