// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/talentbridge/matchengine/internal/accuracy"
	"github.com/talentbridge/matchengine/internal/analysis"
	"github.com/talentbridge/matchengine/internal/mining"
	"github.com/talentbridge/matchengine/internal/ranking"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRankedCandidates outputs the top ranked candidates with scores
// and their strongest reasons.
func (p *Printer) PrintRankedCandidates(ranked []ranking.RankedCandidate) {
	if len(ranked) == 0 {
		p.printBox("RANKED CANDIDATES", "no candidates above the score floor")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates ranked: %d\n\n", len(ranked)))

	count := min(len(ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		rc := ranked[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", rc.Ranking, rc.Name))
		sb.WriteString(fmt.Sprintf("    Score: %d (confidence %.2f)\n", rc.Result.Score, rc.Result.Confidence))
		if len(rc.Result.Reasons) > 0 {
			reason := rc.Result.Reasons[0].Message
			if len(reason) > 45 {
				reason = reason[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("    %s\n", reason))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(ranked)-maxItemsToShow))
	}

	p.printBox("RANKED CANDIDATES", sb.String())
}

// PrintComparison outputs a side-by-side candidate comparison.
func (p *Printer) PrintComparison(cmp *ranking.Comparison) {
	if cmp == nil || len(cmp.Entries) == 0 {
		return
	}

	var sb strings.Builder
	for i, e := range cmp.Entries {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, e.Name))
		sb.WriteString(fmt.Sprintf("    Score: %d  Skills: %.0f%%  Exp: %.1fy\n", e.Score, e.SkillsPercent, e.Experience))
		sb.WriteString(fmt.Sprintf("    Education: %s  Overall: %s\n", e.Education, e.Assessment))
		if i < len(cmp.Entries)-1 {
			sb.WriteString("\n")
		}
	}

	if len(cmp.KeyDifferences) > 0 {
		sb.WriteString("\nKey differences:\n")
		for _, d := range cmp.KeyDifferences {
			sb.WriteString(fmt.Sprintf("  • %s\n", d))
		}
	}
	if len(cmp.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, r := range cmp.Recommendations {
			sb.WriteString(fmt.Sprintf("  • %s\n", r))
		}
	}

	p.printBox("CANDIDATE COMPARISON", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs a candidate strength/weakness report.
func (p *Printer) PrintReport(report *analysis.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall assessment: %s\n", report.Assessment))

	if len(report.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		for _, f := range report.Strengths {
			sb.WriteString(fmt.Sprintf("  + %s\n", f.Message))
		}
	}
	if len(report.Weaknesses) > 0 {
		sb.WriteString("\nWeaknesses:\n")
		for _, f := range report.Weaknesses {
			sb.WriteString(fmt.Sprintf("  - %s\n", f.Message))
		}
	}
	if len(report.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, r := range report.Recommendations {
			sb.WriteString(fmt.Sprintf("  • %s\n", r))
		}
	}

	p.printBox("CANDIDATE ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestions outputs proactively mined candidate suggestions.
func (p *Printer) PrintSuggestions(suggestions []mining.Suggestion) {
	if len(suggestions) == 0 {
		p.printBox("PROACTIVE SUGGESTIONS", "no candidates match the demand profile")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Suggested %d candidates:\n\n", len(suggestions)))

	count := min(len(suggestions), maxItemsToShow)
	for i := 0; i < count; i++ {
		sg := suggestions[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, sg.Name))
		sb.WriteString(fmt.Sprintf("    Score: %d (confidence %.2f)\n", sg.Score, sg.Confidence))
		if len(sg.PotentialRoles) > 0 {
			roles := strings.Join(sg.PotentialRoles, "; ")
			if len(roles) > 45 {
				roles = roles[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Fits: %s\n", roles))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(suggestions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(suggestions)-maxItemsToShow))
	}

	p.printBox("PROACTIVE SUGGESTIONS", sb.String())
}

// PrintAccuracy outputs one accuracy measurement.
func (p *Printer) PrintAccuracy(m *accuracy.Metrics) {
	if m == nil {
		return
	}

	if m.Status == accuracy.StatusInsufficientData {
		p.printBox("RECOMMENDATION ACCURACY",
			fmt.Sprintf("insufficient data: %d recommendations in window", m.SampleSize))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:          %.2f (%s)\n", m.Overall, m.Level))
	sb.WriteString(fmt.Sprintf("Interaction rate: %.0f%%\n", m.InteractionRate*100))
	sb.WriteString(fmt.Sprintf("Sample size:      %d\n", m.SampleSize))

	if len(m.ByScoreBucket) > 0 {
		sb.WriteString("\nBy score band:\n")
		for _, label := range []string{"80-100", "60-79", "40-59", "20-39", "0-19"} {
			if b, ok := m.ByScoreBucket[label]; ok {
				sb.WriteString(fmt.Sprintf("  %-7s %.2f (%d items)\n", label, b.Accuracy, b.Count))
			}
		}
	}
	if len(m.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		for _, s := range m.Suggestions {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	}

	p.printBox("RECOMMENDATION ACCURACY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTrend outputs an accuracy trend report.
func (p *Printer) PrintTrend(r *accuracy.TrendReport) {
	if r == nil || len(r.Points) == 0 {
		return
	}

	var sb strings.Builder
	for _, pt := range r.Points {
		sb.WriteString(fmt.Sprintf("%2dd window: %.2f (%d items)\n", pt.WindowDays, pt.Accuracy, pt.SampleSize))
	}
	sb.WriteString(fmt.Sprintf("\nDirection: %s (%+.1f%%)", r.Direction, r.ChangePercent))

	p.printBox("ACCURACY TREND", sb.String())
}
