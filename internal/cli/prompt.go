package cli

import (
	"errors"
	"os"

	"github.com/alexanderramin/shiftclock/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var errNoTerminal = errors.New("password required: pass --password or run in a terminal")

// StdinIsTerminal reports whether prompts can be shown.
func StdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// PromptPassword asks for a password with a masked huh input.
func PromptPassword(title string) (string, error) {
	var password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("password cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(shiftclockHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", err
	}
	return password, nil
}

func shiftclockHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorPink)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorPink)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// passwordOrPrompt returns flagValue when set. Otherwise it prompts on a
// terminal. Without a terminal it returns errNoTerminal, unless optional is
// set, in which case it returns an empty password.
func passwordOrPrompt(app *App, flagValue, title string, optional bool) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if !app.interactive() || app.ReadPassword == nil {
		if optional {
			return "", nil
		}
		return "", errNoTerminal
	}
	return app.ReadPassword(title)
}
