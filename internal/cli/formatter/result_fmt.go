package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/psyche/internal/contract"
	"github.com/alexanderramin/psyche/internal/domain"
)

// FormatSubmitResponse renders a scored submission with its interpretation
// and what happened to storage and the profile.
func FormatSubmitResponse(inst *domain.Instrument, resp *contract.SubmitResponse) string {
	var b strings.Builder
	r := resp.Result

	b.WriteString(fmt.Sprintf("%s  %s\n", Bold(inst.Title), ClassificationLabel(r)))
	if !r.Unscored {
		b.WriteString(fmt.Sprintf("Overall %s", Score(r.Overall)))
		if inst.HasSeverity() {
			b.WriteString("  " + RenderSeverity(inst.Normalize(r.Overall), 10))
		}
		b.WriteString("\n")
		b.WriteString(formatDimensions(inst, r))
	}

	b.WriteString("\n" + Header("Interpretation") + "\n")
	for _, c := range resp.Interpretation.Chunks {
		b.WriteString(Bold(c.Title) + "\n" + strings.TrimSpace(c.Body) + "\n\n")
	}

	if len(r.RecommendedTests) > 0 {
		b.WriteString(Header("Suggested next") + "\n")
		for _, m := range r.RecommendationMessages {
			b.WriteString(m + "\n")
		}
		b.WriteString("  " + strings.Join(r.RecommendedTests, ", ") + "\n\n")
	}

	if len(resp.Warnings) > 0 {
		for _, w := range resp.Warnings {
			b.WriteString(StyleYellow.Render("  WARNING: "+w) + "\n")
		}
		b.WriteString("\n")
	}

	switch {
	case !resp.Stored:
		b.WriteString(StyleRed.Render("Result was not saved.") + "\n")
	case resp.ProfileRefresh == contract.ProfileFailed:
		b.WriteString(StyleYellow.Render("Saved, but the profile was not updated. Run `psyche profile refresh`.") + "\n")
	case resp.Profile != nil:
		b.WriteString(Dim("Saved as "+TruncID(r.ID)) + "  " + RiskIndicator(resp.Profile.RiskLevel) + "  " + StateBadge(resp.Profile.State) + "\n")
	}
	return RenderBox("Result", b.String())
}

// formatDimensions lists dimension scores in declared order. Single
// dimension instruments print nothing extra.
func formatDimensions(inst *domain.Instrument, r domain.ScoredResult) string {
	if len(inst.Dimensions) < 2 {
		return ""
	}
	var b strings.Builder
	for _, d := range inst.Dimensions {
		label := d.Label
		if label == "" {
			label = d.ID
		}
		v, ok := r.Dimensions[d.ID]
		if !ok {
			b.WriteString(fmt.Sprintf("  %-20s %s\n", label, Dim("--")))
			continue
		}
		b.WriteString(fmt.Sprintf("  %-20s %s\n", label, Score(v)))
	}
	return b.String()
}

func FormatResultList(results []*domain.ScoredResult, titles map[string]string, now time.Time) string {
	if len(results) == 0 {
		return Dim("No results yet. Take a test with `psyche take gad7 --user <id>`.") + "\n"
	}
	cols := []Column{{Title: "ID"}, {Title: "TEST"}, {Title: "SCORE", Align: AlignRight}, {Title: "RESULT"}, {Title: "WHEN"}}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		title := titles[r.InstrumentID]
		if title == "" {
			title = r.InstrumentID
		}
		score := Score(r.Overall)
		if r.Unscored {
			score = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			title,
			score,
			ClassificationLabel(*r),
			RelativeDateFrom(r.CreatedAt, now),
		})
	}
	return RenderColumns(cols, rows)
}
