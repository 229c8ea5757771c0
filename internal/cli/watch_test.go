package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(m watchModel, k string) (watchModel, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return next.(watchModel), cmd
}

// runAction presses a key and feeds the resulting clock result back in.
func runAction(t *testing.T, m watchModel, k string) watchModel {
	t.Helper()
	m, cmd := press(m, k)
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
	next, _ := m.Update(cmd())
	return next.(watchModel)
}

func newTestWatch(t *testing.T) watchModel {
	t.Helper()
	app := testApp(t)
	app.Now = func() time.Time { return time.Now().UTC() }
	u, err := app.Users.Resolve(context.Background(), "empleado1")
	require.NoError(t, err)
	s, err := app.Clock.Current(context.Background(), u.ID)
	require.NoError(t, err)
	return newWatchModel(app, u, domain.LocaleYummy, s)
}

func TestWatchModel_KeysDriveTransitions(t *testing.T) {
	m := newTestWatch(t)
	assert.Contains(t, m.View(), "FUERA DE TURNO")

	m = runAction(t, m, "i")
	assert.Equal(t, domain.StateWorking, m.session.State())
	assert.Contains(t, m.status, "entrada")

	m = runAction(t, m, "p")
	assert.Equal(t, domain.StateOnPause, m.session.State())

	m = runAction(t, m, "r")
	assert.Equal(t, domain.StateWorking, m.session.State())

	m = runAction(t, m, "o")
	assert.Equal(t, domain.StateIdle, m.session.State())
	assert.Contains(t, m.status, "Turno cerrado")
}

func TestWatchModel_InvalidActionShowsMessage(t *testing.T) {
	m := newTestWatch(t)

	m = runAction(t, m, "p")
	assert.False(t, m.busy)
	assert.Equal(t, domain.StateIdle, m.session.State())
	assert.Contains(t, m.status, "No hay un turno activo.")
}

func TestWatchModel_IgnoresKeysWhileBusy(t *testing.T) {
	m := newTestWatch(t)
	m, cmd := press(m, "i")
	require.NotNil(t, cmd)

	_, cmd = press(m, "o")
	assert.Nil(t, cmd)
}

func TestWatchModel_QuitAndTick(t *testing.T) {
	m := newTestWatch(t)

	_, cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	next, cmd := m.Update(tickMsg(time.Now()))
	assert.NotNil(t, cmd, "ticks keep the clock running")
	assert.True(t, strings.Contains(next.(watchModel).View(), "salir"))

	_, cmd = press(m, "x")
	assert.Nil(t, cmd)
}

func TestClockErrorText(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&domain.TransitionError{Action: domain.ActionClockIn, From: domain.StateWorking}, "Ya tienes un turno activo."},
		{&domain.TransitionError{Action: domain.ActionResume, From: domain.StateWorking}, "No estás en pausa."},
		{&domain.TransitionError{Action: domain.ActionPause, From: domain.StateOnPause}, "Ya estás en pausa."},
		{&domain.TransitionError{Action: domain.ActionClockOut, From: domain.StateIdle}, "No hay un turno activo."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clockErrorText(tt.err))
	}
}

func TestWatchModel_DrivenSession(t *testing.T) {
	m := newTestWatch(t)
	d := teatest.New(t, m)
	d.Init()
	assert.Equal(t, 1, d.Dropped, "the first tick is a timer")

	d.Press("ip")
	assert.Contains(t, d.View(), "EN PAUSA")

	d.Press("ro")
	assert.Contains(t, d.View(), "FUERA DE TURNO")
	assert.Contains(t, d.View(), "Turno cerrado")

	shifts, err := m.app.Shifts.List(context.Background(), domain.ShiftFilter{UserID: m.user.ID})
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, domain.LocaleYummy, shifts[0].Locale)

	d.Press("q")
	assert.True(t, d.Quitting)
	d.Press("i")
	assert.Equal(t, domain.StateIdle, d.Model.(watchModel).session.State())
}
