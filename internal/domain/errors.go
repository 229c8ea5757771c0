package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is matched by every *TransitionError.
	ErrInvalidTransition = errors.New("invalid clock transition")

	ErrInvalidSession = errors.New("invalid work session")
	ErrUnknownAction  = errors.New("unknown clock action")
	ErrUnknownLocale  = errors.New("unknown locale")
	ErrInvalidUser    = errors.New("invalid user")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrUnknownProduct = errors.New("unknown product")
)

// TransitionError reports a clock action attempted from a state that does
// not allow it. The session is left unchanged.
type TransitionError struct {
	Action ClockAction
	From   SessionState
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Action, e.From)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
