package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom describes t relative to now, e.g. "Today" or "3d ago".
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(now.Sub(t).Hours() / 24))
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 14:
		return fmt.Sprintf("%dd ago", days)
	case days < 60:
		return fmt.Sprintf("%dw ago", days/7)
	default:
		return fmt.Sprintf("%dmo ago", days/30)
	}
}

// HumanDate formats a day as "Mar 30, 2025".
func HumanDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Score prints a score with at most two decimals and no trailing zeros.
func Score(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// OptionalScore is Score for possibly missing values.
func OptionalScore(v *float64) string {
	if v == nil {
		return Dim("--")
	}
	return Score(*v)
}

// ClassificationLabel renders the classification of a result, or a dim
// marker when the result could not be scored.
func ClassificationLabel(r domain.ScoredResult) string {
	if r.Unscored {
		return Dim("unscored")
	}
	label := r.Classification.Label()
	if label == "" {
		return Dim("--")
	}
	return Bold(label)
}

// MoodGlyph returns the emoji used for a mood.
func MoodGlyph(m domain.Mood) string {
	switch m {
	case domain.MoodGreat:
		return "😊"
	case domain.MoodGood:
		return "😴"
	case domain.MoodNeutral:
		return "😐"
	case domain.MoodLow:
		return "😠"
	case domain.MoodBad:
		return "😢"
	}
	return "·"
}
