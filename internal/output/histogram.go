package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/tui/tuistyles"
)

// DefaultHistogramWidth is the bar length of the fullest bin
const DefaultHistogramWidth = 40

// RenderHistogram draws one horizontal bar per bin, scaled so the fullest bin spans width
func RenderHistogram(bins []calculation.HistogramBin, width int) string {
	if len(bins) == 0 {
		return ""
	}
	if width <= 0 {
		width = DefaultHistogramWidth
	}

	peak := 0
	for _, b := range bins {
		if b.Count > peak {
			peak = b.Count
		}
	}

	var sb strings.Builder
	for _, b := range bins {
		n := 0
		if peak > 0 {
			n = b.Count * width / peak
		}
		if b.Count > 0 && n == 0 {
			n = 1
		}
		label := fmt.Sprintf("%s - %s", tuistyles.FormatCompact(b.Lower), tuistyles.FormatCompact(b.Upper))
		sb.WriteString(fmt.Sprintf("%-26s │%s %d\n", label, strings.Repeat("█", n), b.Count))
	}
	return sb.String()
}
