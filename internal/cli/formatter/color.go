package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Pastel palette matching the storefront screens.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPink   = lipgloss.Color("#f5a9d0")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#d3869b")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePink   = lipgloss.NewStyle().Foreground(ColorPink)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StateIndicator renders a session state as a colored pill.
func StateIndicator(s domain.SessionState) string {
	switch s {
	case domain.StateWorking:
		return StyleGreen.Render("● TRABAJANDO")
	case domain.StateOnPause:
		return StyleYellow.Render("⏸ EN PAUSA")
	case domain.StateIdle:
		return StyleDim.Render("○ FUERA DE TURNO")
	default:
		return StyleDim.Render(string(s))
	}
}

// EventBadge colors a time-log event the way the Discord embeds do.
func EventBadge(e domain.EventType) string {
	switch e {
	case domain.EventEntrada:
		return StyleGreen.Render("✅ entrada")
	case domain.EventPausa:
		return StyleYellow.Render("⏸️ pausa")
	case domain.EventSalida:
		return StyleRed.Render("⛔ salida")
	default:
		return StyleDim.Render(string(e))
	}
}

// NotificationPill renders an outbox status.
func NotificationPill(s domain.NotificationStatus) string {
	switch s {
	case domain.NotificationPending:
		return StyleYellow.Render("○ pending")
	case domain.NotificationSent:
		return StyleGreen.Render("✔ sent")
	case domain.NotificationFailed:
		return StyleRed.Render("✖ failed")
	default:
		return StyleDim.Render(string(s))
	}
}

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
