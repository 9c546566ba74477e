package domain

import (
	"errors"
	"strings"
)

// Status is a user's attendance state and the type of a recorded transition
type Status string

const (
	StatusShiftStart Status = "shift_start"
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusBreakStart Status = "break_start"
	StatusBreakEnd   Status = "break_end"
	StatusAbsent     Status = "absent"

	// StatusOff is the resting state of a freshly provisioned user. It is never recorded as an event.
	StatusOff Status = "off"
)

// ErrInvalidStatus is returned for values outside the transition set
var ErrInvalidStatus = errors.New("invalid status")

var transitions = map[Status]struct{}{
	StatusShiftStart: {},
	StatusActive:     {},
	StatusInactive:   {},
	StatusBreakStart: {},
	StatusBreakEnd:   {},
	StatusAbsent:     {},
}

// ParseStatus accepts only the six recordable transitions
func ParseStatus(s string) (Status, error) {
	st := Status(strings.TrimSpace(s))
	if !st.IsTransition() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// IsTransition reports whether s can be recorded as an activity event
func (s Status) IsTransition() bool {
	_, ok := transitions[s]
	return ok
}

// IsAlertWorthy reports whether events of this type are dispatched to recipients
func (s Status) IsAlertWorthy() bool {
	return s == StatusInactive || s == StatusAbsent
}

// IsKnownUserStatus reports whether s is a valid resting status for a user row
func (s Status) IsKnownUserStatus() bool {
	return s == StatusOff || s.IsTransition()
}

// AlertWorthyStatuses lists the event types the notification dispatcher picks up
func AlertWorthyStatuses() []Status {
	return []Status{StatusInactive, StatusAbsent}
}
