package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderShare renders part's share of whole as a bar like [████░░░░] 45%.
// A zero whole renders an empty bar.
func RenderShare(part, whole float64, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if whole > 0 {
		pct = part / whole
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	return fmt.Sprintf("[%s] %s", StylePurple.Render(bar), fmt.Sprintf("%3.0f%%", pct*100))
}
