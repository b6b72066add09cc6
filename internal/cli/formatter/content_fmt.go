package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/psyche/internal/domain"
)

func FormatContentList(items []*domain.ContentItem) string {
	if len(items) == 0 {
		return Dim("Catalog is empty. Run `psyche content import` to load the starter catalog.") + "\n"
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{Dim(it.ID), it.Title, StylePurple.Render(it.Category), it.Type, it.Difficulty})
	}
	return RenderTable([]string{"ID", "TITLE", "CATEGORY", "TYPE", "DIFFICULTY"}, rows)
}

func FormatRecommendation(rec domain.RecommendationResult) string {
	var b strings.Builder
	b.WriteString(Bold(rec.Title))
	if rec.Type != "" {
		b.WriteString("  " + Dim(rec.Type))
	}
	b.WriteString("\n" + rec.Reason + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s  %s\n", StateBadge(rec.State), StylePurple.Render(rec.Category), Dim(fmt.Sprintf("priority %d", rec.Priority))))
	if rec.Degraded {
		b.WriteString(StyleYellow.Render("The catalog could not be read; showing the default suggestion.") + "\n")
	} else if rec.Fallback {
		b.WriteString(Dim("No content matched this state exactly.") + "\n")
	}
	return RenderBox("Recommended", b.String())
}
