package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/execview/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Ago returns a short relative timestamp such as "5m ago" or "3d ago".
// Times in the future or more than two weeks back are printed as dates.
func Ago(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 14*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(math.Floor(diff.Hours()/24)))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// Currency renders a whole-dollar amount compactly: $2.53M, $48.2K, $950.
func Currency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	d := decimal.NewFromFloat(v)
	switch {
	case v >= 1e9:
		return sign + "$" + d.Div(decimal.NewFromInt(1e9)).StringFixed(2) + "B"
	case v >= 1e6:
		return sign + "$" + d.Div(decimal.NewFromInt(1e6)).StringFixed(2) + "M"
	case v >= 1e3:
		return sign + "$" + d.Div(decimal.NewFromInt(1e3)).StringFixed(1) + "K"
	default:
		return sign + "$" + d.StringFixed(0)
	}
}

// Percent renders a percentage with one decimal.
func Percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1) + "%"
}

// Number renders an integer with thousands separators.
func Number(v float64) string {
	s := decimal.NewFromFloat(math.Abs(v)).StringFixed(0)
	var b strings.Builder
	if v < 0 && s != "0" {
		b.WriteByte('-')
	}
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Value renders v according to a KPI display format.
func Value(v float64, f domain.MetricFormat) string {
	switch f {
	case domain.FormatCurrency:
		return Currency(v)
	case domain.FormatPercentage:
		return Percent(v)
	default:
		return Number(v)
	}
}

// Decimal renders v with the given number of decimals.
func Decimal(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}
