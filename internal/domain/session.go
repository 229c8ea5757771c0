package domain

import (
	"fmt"
	"time"
)

// WorkSession is the persisted clock state of a single worker.
// The zero value is the Idle session.
type WorkSession struct {
	UserID         string
	IsActive       bool
	IsOnPause      bool
	StartTime      *time.Time
	LastPauseTime  *time.Time
	TotalPauseTime time.Duration
	UpdatedAt      time.Time
}

// Transition is the value emitted by every successful clock action.
type Transition struct {
	Action ClockAction
	Event  EventType
	At     time.Time

	// Shift is only set by ClockOut.
	Shift *ShiftLog

	// ClockSkew reports that a computed duration came out negative and was
	// clamped to zero.
	ClockSkew bool
}

// NewWorkSession returns the Idle session for a user.
func NewWorkSession(userID string) *WorkSession {
	return &WorkSession{UserID: userID}
}

// State derives the tracker state from the session flags.
func (s *WorkSession) State() SessionState {
	switch {
	case !s.IsActive:
		return StateIdle
	case s.IsOnPause:
		return StateOnPause
	default:
		return StateWorking
	}
}

// Validate checks the structural invariants of a session.
func (s *WorkSession) Validate() error {
	if s.IsOnPause && !s.IsActive {
		return fmt.Errorf("%w: paused session is not active", ErrInvalidSession)
	}
	if s.IsActive != (s.StartTime != nil) {
		return fmt.Errorf("%w: start time must be set iff active", ErrInvalidSession)
	}
	if s.IsOnPause != (s.LastPauseTime != nil) {
		return fmt.Errorf("%w: last pause time must be set iff on pause", ErrInvalidSession)
	}
	if s.TotalPauseTime < 0 {
		return fmt.Errorf("%w: negative total pause time", ErrInvalidSession)
	}
	return nil
}

// Apply dispatches a clock action to the matching transition.
func (s *WorkSession) Apply(action ClockAction, now time.Time) (Transition, error) {
	switch action {
	case ActionClockIn:
		return s.ClockIn(now)
	case ActionPause:
		return s.Pause(now)
	case ActionResume:
		return s.Resume(now)
	case ActionClockOut:
		return s.ClockOut(now)
	default:
		return Transition{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

// ClockIn starts a shift. Valid only from Idle.
func (s *WorkSession) ClockIn(now time.Time) (Transition, error) {
	if s.State() != StateIdle {
		return Transition{}, s.reject(ActionClockIn)
	}
	start := now
	s.IsActive = true
	s.IsOnPause = false
	s.StartTime = &start
	s.LastPauseTime = nil
	s.TotalPauseTime = 0
	s.UpdatedAt = now
	return Transition{Action: ActionClockIn, Event: ActionClockIn.Event(), At: now}, nil
}

// Pause opens a pause interval. Valid only from Working.
func (s *WorkSession) Pause(now time.Time) (Transition, error) {
	if s.State() != StateWorking {
		return Transition{}, s.reject(ActionPause)
	}
	paused := now
	s.IsOnPause = true
	s.LastPauseTime = &paused
	s.UpdatedAt = now
	return Transition{Action: ActionPause, Event: ActionPause.Event(), At: now}, nil
}

// Resume closes the open pause interval and adds it to TotalPauseTime.
// Valid only from OnPause.
func (s *WorkSession) Resume(now time.Time) (Transition, error) {
	if s.State() != StateOnPause {
		return Transition{}, s.reject(ActionResume)
	}
	skew := s.closePause(now)
	s.UpdatedAt = now
	return Transition{Action: ActionResume, Event: ActionResume.Event(), At: now, ClockSkew: skew}, nil
}

// ClockOut ends the shift and resets the session to Idle. An open pause is
// closed as of now before the totals are computed.
func (s *WorkSession) ClockOut(now time.Time) (Transition, error) {
	if s.State() == StateIdle {
		return Transition{}, s.reject(ActionClockOut)
	}

	var skew bool
	if s.IsOnPause {
		skew = s.closePause(now)
	}

	start := *s.StartTime
	elapsed, elapsedSkew := clampedSince(start, now)
	work := elapsed - s.TotalPauseTime
	if work < 0 {
		work = 0
		skew = true
	}

	shift := &ShiftLog{
		UserID:         s.UserID,
		StartTime:      start,
		EndTime:        now,
		TotalPauseTime: s.TotalPauseTime,
		TotalWorkTime:  work,
	}

	userID := s.UserID
	*s = WorkSession{UserID: userID, UpdatedAt: now}

	return Transition{
		Action:    ActionClockOut,
		Event:     ActionClockOut.Event(),
		At:        now,
		Shift:     shift,
		ClockSkew: skew || elapsedSkew,
	}, nil
}

// PausedAt returns the pause time accumulated as of now, including an
// interval that is still open.
func (s *WorkSession) PausedAt(now time.Time) time.Duration {
	total := s.TotalPauseTime
	if s.IsOnPause && s.LastPauseTime != nil {
		open, _ := clampedSince(*s.LastPauseTime, now)
		total += open
	}
	return total
}

// WorkedAt returns the working time as of now: elapsed shift time minus
// all pause time. Zero for an Idle session.
func (s *WorkSession) WorkedAt(now time.Time) time.Duration {
	if !s.IsActive || s.StartTime == nil {
		return 0
	}
	elapsed, _ := clampedSince(*s.StartTime, now)
	worked := elapsed - s.PausedAt(now)
	if worked < 0 {
		return 0
	}
	return worked
}

func (s *WorkSession) closePause(now time.Time) bool {
	open, skew := clampedSince(*s.LastPauseTime, now)
	s.TotalPauseTime += open
	s.IsOnPause = false
	s.LastPauseTime = nil
	return skew
}

func (s *WorkSession) reject(action ClockAction) error {
	return &TransitionError{Action: action, From: s.State()}
}

// clampedSince returns to-from, or zero when the clock went backwards.
func clampedSince(from, to time.Time) (time.Duration, bool) {
	d := to.Sub(from)
	if d < 0 {
		return 0, true
	}
	return d, false
}

// FormatClock renders a duration as HH:MM:SS. Hours are not wrapped at 24
// and negative values render as zero.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
