package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/execview/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TrendStyle colors a KPI change: up is green, down is red.
func TrendStyle(t domain.TrendDirection) lipgloss.Style {
	switch t {
	case domain.TrendUp:
		return StyleGreen
	case domain.TrendDown:
		return StyleRed
	default:
		return StyleDim
	}
}

// TrendIndicator renders an arrow and the signed change, e.g. "▲ +4.2%".
func TrendIndicator(t domain.TrendDirection, change float64) string {
	arrow := "●"
	switch t {
	case domain.TrendUp:
		arrow = "▲"
	case domain.TrendDown:
		arrow = "▼"
	}
	return TrendStyle(t).Render(fmt.Sprintf("%s %+.1f%%", arrow, change))
}

// NotificationBadge renders the severity marker shown next to a
// notification.
func NotificationBadge(t domain.NotificationType) string {
	switch t {
	case domain.NotificationError:
		return StyleRed.Render("✖ error")
	case domain.NotificationWarning:
		return StyleYellow.Render("▲ warning")
	case domain.NotificationSuccess:
		return StyleGreen.Render("✔ success")
	default:
		return StyleBlue.Render("● info")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
