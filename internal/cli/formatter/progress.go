package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderSeverity renders a normalized severity in [0,1] as a bar like
// [████░░░░] 45%. Higher severity is colored red.
func RenderSeverity(severity float64, width int) string {
	if severity < 0 {
		severity = 0
	}
	if severity > 1 {
		severity = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(severity * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if severity >= 0.66 {
		style = StyleRed
	} else if severity >= 0.33 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), severity*100)
}
