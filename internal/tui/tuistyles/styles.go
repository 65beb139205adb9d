// Package tuistyles holds the lipgloss palette and number formatting shared by the
// terminal views and the console formatters.
package tuistyles

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#5A9FD4")
	ColorAccent    = lipgloss.Color("#F4A261")
	ColorSuccess   = lipgloss.Color("#2A9D8F")
	ColorDanger    = lipgloss.Color("#E63946")
	ColorWarning   = lipgloss.Color("#E9C46A")
	ColorInfo      = lipgloss.Color("#56B6C2")

	ColorForeground = lipgloss.Color("#FAFAFA")
	ColorMuted      = lipgloss.Color("#888888")
	ColorBorder     = lipgloss.Color("#444444")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	MetricPositiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSuccess)

	MetricNegativeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorDanger)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorBorder)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)
)

// MetricTrendStyle picks the positive or negative style by sign
func MetricTrendStyle(v float64) lipgloss.Style {
	switch {
	case v > 0:
		return MetricPositiveStyle
	case v < 0:
		return MetricNegativeStyle
	default:
		return MetricValueStyle
	}
}

// TrendIndicator returns an arrow for the sign of v
func TrendIndicator(v float64) string {
	switch {
	case v > 0:
		return "▲"
	case v < 0:
		return "▼"
	default:
		return "="
	}
}

// NonFinite renders NaN as "n/a" and infinities as "∞" or "-∞". ok is false for finite v.
func NonFinite(v float64) (s string, ok bool) {
	switch {
	case math.IsNaN(v):
		return "n/a", true
	case math.IsInf(v, 1):
		return "∞", true
	case math.IsInf(v, -1):
		return "-∞", true
	}
	return "", false
}

// FormatCurrency rounds to whole rupees and groups digits the Indian way (12,34,567)
func FormatCurrency(amount float64) string {
	if s, ok := NonFinite(amount); ok {
		return s
	}
	d := decimal.NewFromFloat(amount).Round(0)
	if d.IsNegative() {
		return "-₹" + GroupIndian(d.Abs().String())
	}
	return "₹" + GroupIndian(d.String())
}

// GroupIndian inserts lakh/crore separators into an integer string
func GroupIndian(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		s = strings.Join(parts, ",") + "," + tail
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatCompact renders large amounts in lakh (L) or crore (Cr) units
func FormatCompact(amount float64) string {
	if s, ok := NonFinite(amount); ok {
		return s
	}
	d := decimal.NewFromFloat(amount)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	crore := decimal.NewFromInt(10000000)
	lakh := decimal.NewFromInt(100000)
	switch {
	case d.GreaterThanOrEqual(crore):
		return sign + "₹" + d.Div(crore).StringFixed(2) + " Cr"
	case d.GreaterThanOrEqual(lakh):
		return sign + "₹" + d.Div(lakh).StringFixed(2) + " L"
	default:
		return FormatCurrency(amount)
	}
}
