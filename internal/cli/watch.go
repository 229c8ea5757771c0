package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shiftclock/internal/cli/formatter"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type watchKeyMap struct {
	In     key.Binding
	Pause  key.Binding
	Resume key.Binding
	Out    key.Binding
	Quit   key.Binding
}

func defaultWatchKeys() watchKeyMap {
	return watchKeyMap{
		In:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "entrada")),
		Pause:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pausa")),
		Resume: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reanudar")),
		Out:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "salida")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "salir")),
	}
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.In, k.Pause, k.Resume, k.Out, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type tickMsg time.Time

type clockDoneMsg struct {
	res *service.ClockResult
	err error
}

// watchModel is the live clock: it redraws the running totals every second
// and applies clock actions from single key presses.
type watchModel struct {
	app     *App
	user    *domain.User
	locale  domain.Locale
	session *domain.WorkSession
	now     time.Time
	status  string
	busy    bool
	keys    watchKeyMap
	help    help.Model
}

func newWatchModel(app *App, u *domain.User, locale domain.Locale, s *domain.WorkSession) watchModel {
	return watchModel{
		app:     app,
		user:    u,
		locale:  locale,
		session: s,
		now:     app.now(),
		keys:    defaultWatchKeys(),
		help:    help.New(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) Init() tea.Cmd {
	return tick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.now = m.app.now()
		return m, tick()

	case clockDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = formatter.StyleRed.Render(clockErrorText(msg.err))
			return m, nil
		}
		m.session = msg.res.Session
		m.now = m.app.now()
		m.status = strings.TrimRight(formatter.FormatTransition(m.user.Username, m.locale, msg.res.Transition, m.app.Location), "\n")
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		var action domain.ClockAction
		switch {
		case key.Matches(msg, m.keys.In):
			action = domain.ActionClockIn
		case key.Matches(msg, m.keys.Pause):
			action = domain.ActionPause
		case key.Matches(msg, m.keys.Resume):
			action = domain.ActionResume
		case key.Matches(msg, m.keys.Out):
			action = domain.ActionClockOut
		default:
			return m, nil
		}
		m.busy = true
		return m, m.apply(action)
	}
	return m, nil
}

func (m watchModel) apply(action domain.ClockAction) tea.Cmd {
	app, userID, locale := m.app, m.user.ID, m.locale
	return func() tea.Msg {
		res, err := app.Clock.Do(context.Background(), service.ClockRequest{
			UserID: userID,
			Locale: locale,
			Action: action,
		})
		return clockDoneMsg{res: res, err: err}
	}
}

func (m watchModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.FormatSession(m.user.Username, m.session, m.now, m.app.Location))
	b.WriteString("\n")
	b.WriteString(formatter.Dim(m.locale.ShopName()))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func clockErrorText(err error) string {
	var te *domain.TransitionError
	if errors.As(err, &te) {
		switch te.From {
		case domain.StateIdle:
			return "No hay un turno activo."
		case domain.StateWorking:
			if te.Action == domain.ActionClockIn {
				return "Ya tienes un turno activo."
			}
			return "No estás en pausa."
		case domain.StateOnPause:
			return "Ya estás en pausa."
		}
	}
	return err.Error()
}

func newClockWatchCmd(app *App) *cobra.Command {
	var userRef string
	var locale localeFlag

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live clock with single-key actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := resolveUser(ctx, app, userRef)
			if err != nil {
				return err
			}
			l, err := defaultLocale(u, locale)
			if err != nil {
				return err
			}
			if !u.CanWorkAt(l) {
				return fmt.Errorf("%w: %s at %s", service.ErrLocaleNotAllowed, u.Username, l)
			}
			s, err := app.Clock.Current(ctx, u.ID)
			if err != nil {
				return err
			}

			p := tea.NewProgram(newWatchModel(app, u, l, s),
				tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&userRef, "user", "u", "", "User id or username")
	cmd.Flags().VarP(&locale, "locale", "l", "Storefront (yummy, uwu)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
