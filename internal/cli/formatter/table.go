package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Column is a table header plus how its cells are padded. Numeric columns
// read better right-aligned.
type Column struct {
	Title string
	Align Align
}

// Cols builds left-aligned columns from titles.
func Cols(titles ...string) []Column {
	cols := make([]Column, len(titles))
	for i, t := range titles {
		cols[i] = Column{Title: t}
	}
	return cols
}

// RenderTable renders left-aligned columns under a header and separator.
func RenderTable(headers []string, rows [][]string) string {
	return RenderColumns(Cols(headers...), rows)
}

// RenderColumns pads every cell to its column's widest visible width, so
// styled cells line up. Missing trailing cells render empty.
func RenderColumns(cols []Column, rows [][]string) string {
	if len(cols) == 0 {
		return ""
	}

	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = lipgloss.Width(c.Title)
	}
	for _, row := range rows {
		for i := 0; i < len(cols) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, c := range cols {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", max(0, widths[i]-lipgloss.Width(cell)))
			last := i == len(cols)-1
			switch {
			case c.Align == AlignRight:
				b.WriteString(pad + cell)
			case last:
				b.WriteString(cell)
			default:
				b.WriteString(cell + pad)
			}
			if !last {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	titles := make([]string, len(cols))
	rules := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = StyleHeader.Render(c.Title)
		rules[i] = StyleDim.Render(strings.Repeat("─", widths[i]))
	}
	writeRow(titles)
	writeRow(rules)
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}
