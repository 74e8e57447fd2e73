package panel

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// getLines splits s into lines and returns the widest line width
func getLines(s string) (lines []string, widest int) {
	lines = strings.Split(s, "\n")
	for _, l := range lines {
		if w := ansi.StringWidth(l); w > widest {
			widest = w
		}
	}
	return lines, widest
}

// PlaceOverlay draws fg on top of bg with its top-left corner at (x, y).
// bg is extended with blank lines and padded with spaces where fg reaches
// past its bounds.
func PlaceOverlay(x, y int, fg, bg string) string {
	if fg == "" {
		return bg
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	fgLines, _ := getLines(fg)
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < y+len(fgLines) {
		bgLines = append(bgLines, "")
	}

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i < y || i >= y+len(fgLines) {
			b.WriteString(bgLine)
			continue
		}

		fgLine := fgLines[i-y]
		bgWidth := ansi.StringWidth(bgLine)

		left := ansi.Truncate(bgLine, x, "")
		b.WriteString(left)
		if w := ansi.StringWidth(left); w < x {
			b.WriteString(strings.Repeat(" ", x-w))
		}

		b.WriteString(fgLine)

		end := x + ansi.StringWidth(fgLine)
		if end < bgWidth {
			b.WriteString(ansi.Cut(bgLine, end, bgWidth))
		}
	}
	return b.String()
}
