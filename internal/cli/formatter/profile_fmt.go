package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/psyche/internal/domain"
)

const chartDays = 14

func FormatProfile(p *domain.MentalHealthProfile, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s  %s\n", RiskIndicator(p.RiskLevel), StateBadge(p.State), TrendIndicator(p.MoodTrend)))
	b.WriteString(Dim(fmt.Sprintf("%d tests, %d mood days, active on %d of the last %d days",
		p.Stats.TotalTests, p.Stats.TotalMoodDays, p.Signals.ActiveDays, p.Signals.EngagementDays)) + "\n")
	if p.Signals.Severity != nil {
		b.WriteString("Severity  " + RenderSeverity(*p.Signals.Severity, 10) + "\n")
	}

	if p.CombinedReport != "" {
		b.WriteString("\n" + Header("Summary") + "\n")
		b.WriteString(p.CombinedReport + "\n")
		if p.NarrativeDegraded {
			b.WriteString(Dim("(written without the language model)") + "\n")
		}
	}

	if len(p.Recommendations) > 0 {
		b.WriteString("\n" + Header("Next steps") + "\n")
		for _, r := range p.Recommendations {
			b.WriteString(priorityMarker(r.Priority) + " " + r.Text + "\n")
		}
	}

	if chart := formatChart(p.ChartData); chart != "" {
		b.WriteString("\n" + Header("Last two weeks") + "\n" + chart)
	}

	if !p.UpdatedAt.IsZero() {
		b.WriteString("\n" + Dim("Updated "+RelativeDateFrom(p.UpdatedAt, now)) + "\n")
	}
	return RenderBox("Profile", b.String())
}

func priorityMarker(priority int) string {
	switch {
	case priority >= 5:
		return StyleRed.Render("!")
	case priority >= 4:
		return StyleYellow.Render("•")
	default:
		return Dim("•")
	}
}

// formatChart prints the most recent chart points, one line per day.
func formatChart(points []domain.ChartPoint) string {
	if len(points) == 0 {
		return ""
	}
	if len(points) > chartDays {
		points = points[len(points)-chartDays:]
	}
	cols := []Column{{Title: "DAY"}, {Title: "TESTS", Align: AlignRight}, {Title: "SEVERITY"}, {Title: "MOOD"}}
	rows := make([][]string, 0, len(points))
	for _, pt := range points {
		severity := Dim("--")
		if pt.Severity != nil {
			severity = RenderSeverity(*pt.Severity, 6)
		}
		mood := Dim("--")
		if pt.Mood != "" {
			mood = MoodGlyph(pt.Mood) + " " + string(pt.Mood)
		}
		tests := Dim("0")
		if pt.Tests > 0 {
			tests = fmt.Sprintf("%d", pt.Tests)
		}
		rows = append(rows, []string{pt.Date, tests, severity, mood})
	}
	return RenderColumns(cols, rows)
}
