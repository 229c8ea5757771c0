package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
)

// FormatSession renders the live totals of a session as of now.
func FormatSession(username string, s *domain.WorkSession, now time.Time, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(username), StateIndicator(s.State()))
	if !s.IsActive {
		return RenderBox("Turno", b.String())
	}

	fmt.Fprintf(&b, "\n%s  %s\n", Dim("Inicio   "), Timestamp(*s.StartTime, loc))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Trabajado"), StyleGreen.Render(Clock(s.WorkedAt(now))))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Pausa    "), StyleYellow.Render(Clock(s.PausedAt(now))))
	if s.IsOnPause {
		fmt.Fprintf(&b, "%s  %s\n", Dim("En pausa desde"), Timestamp(*s.LastPauseTime, loc))
	}
	return RenderBox("Turno", b.String())
}

// FormatTransition is the one-line confirmation printed after a clock
// action, followed by the shift summary on clock-out.
func FormatTransition(username string, locale domain.Locale, tr domain.Transition, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s en %s a las %s\n",
		EventBadge(tr.Event), Bold(username), locale.ShopName(), Timestamp(tr.At, loc))
	if tr.ClockSkew {
		b.WriteString(StyleYellow.Render("⚠ reloj desfasado: una duración negativa se tomó como cero") + "\n")
	}
	if tr.Shift != nil {
		b.WriteString(FormatShiftSummary(tr.Shift, loc))
		b.WriteString("\n")
	}
	return b.String()
}

func FormatShiftSummary(s *domain.ShiftLog, loc *time.Location) string {
	lines := []string{
		fmt.Sprintf("%s  %s", Dim("Inicio   "), Timestamp(s.StartTime, loc)),
		fmt.Sprintf("%s  %s", Dim("Fin      "), Timestamp(s.EndTime, loc)),
		fmt.Sprintf("%s  %s", Dim("Pausa    "), StyleYellow.Render(Clock(s.TotalPauseTime))),
		fmt.Sprintf("%s  %s", Dim("Trabajado"), StyleGreen.Render(Clock(s.TotalWorkTime))),
	}
	return RenderBox("Turno cerrado", strings.Join(lines, "\n"))
}
