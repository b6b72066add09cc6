package formatter

import (
	"strings"

	"github.com/alexanderramin/psyche/internal/domain"
)

func FormatMoodEntry(e *domain.MoodEntry) string {
	return StyleGreen.Render("✔") + " Logged " + MoodGlyph(e.Mood) + " " + Bold(string(e.Mood)) + " for " + e.DayKey() + "\n"
}

// FormatMoodList renders entries oldest first, with a one-line strip of
// glyphs above the table.
func FormatMoodList(entries []*domain.MoodEntry) string {
	if len(entries) == 0 {
		return Dim("No moods logged yet.") + "\n"
	}
	var strip strings.Builder
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		strip.WriteString(MoodGlyph(e.Mood))
		rows = append(rows, []string{e.DayKey(), MoodGlyph(e.Mood) + " " + string(e.Mood), e.Note})
	}
	return strip.String() + "\n\n" + RenderTable([]string{"DAY", "MOOD", "NOTE"}, rows)
}
