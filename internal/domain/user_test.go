package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanWorkAt(t *testing.T) {
	worker := &User{Username: "empleado1", Role: RoleWorker, AllowedLocales: []Locale{LocaleYummy}}
	admin := &User{Username: "jefe", Role: RoleAdmin}

	assert.True(t, worker.CanWorkAt(LocaleYummy))
	assert.False(t, worker.CanWorkAt(LocaleUwu))
	assert.True(t, admin.CanWorkAt(LocaleUwu), "admins work everywhere")
}

func TestUserValidate(t *testing.T) {
	assert.NoError(t, (&User{Username: "a", Role: RoleWorker, AllowedLocales: []Locale{LocaleUwu}}).Validate())
	assert.ErrorIs(t, (&User{Username: " ", Role: RoleWorker}).Validate(), ErrInvalidUser)
	assert.ErrorIs(t, (&User{Username: "a", Role: "boss"}).Validate(), ErrInvalidUser)
	assert.ErrorIs(t, (&User{Username: "a", Role: RoleWorker, AllowedLocales: []Locale{"mall"}}).Validate(), ErrInvalidUser)
}

func TestParseLocale(t *testing.T) {
	l, err := ParseLocale(" YUMMY ")
	require.NoError(t, err)
	assert.Equal(t, LocaleYummy, l)
	assert.Equal(t, "☕ UwU Café", LocaleUwu.ShopName())

	_, err = ParseLocale("mall")
	assert.ErrorIs(t, err, ErrUnknownLocale)
}

func TestParseClockAction(t *testing.T) {
	cases := map[string]ClockAction{
		"in":        ActionClockIn,
		"entrada":   ActionClockIn,
		"pausa":     ActionPause,
		"resume":    ActionResume,
		"out":       ActionClockOut,
		"CLOCK_OUT": ActionClockOut,
	}
	for in, want := range cases {
		got, err := ParseClockAction(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseClockAction("nap")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestActionEvent(t *testing.T) {
	assert.Equal(t, EventEntrada, ActionClockIn.Event())
	assert.Equal(t, EventPausa, ActionPause.Event())
	assert.Equal(t, EventEntrada, ActionResume.Event())
	assert.Equal(t, EventSalida, ActionClockOut.Event())
}

func TestActionForEvent(t *testing.T) {
	tests := []struct {
		event EventType
		from  SessionState
		want  ClockAction
	}{
		{EventEntrada, StateIdle, ActionClockIn},
		{EventEntrada, StateWorking, ActionClockIn},
		{EventEntrada, StateOnPause, ActionResume},
		{EventPausa, StateWorking, ActionPause},
		{EventSalida, StateOnPause, ActionClockOut},
	}
	for _, tt := range tests {
		got, err := ActionForEvent(tt.event, tt.from)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s from %s", tt.event, tt.from)
	}

	_, err := ActionForEvent("descanso", StateWorking)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestParseEventType(t *testing.T) {
	e, err := ParseEventType(" Pausa ")
	require.NoError(t, err)
	assert.Equal(t, EventPausa, e)

	_, err = ParseEventType("resume")
	assert.ErrorIs(t, err, ErrUnknownAction)
}
