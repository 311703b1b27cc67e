// Package lifecycle holds the pure rules of the test-attempt state machine:
// which roster state a student is in, whether a requested transition is legal
// right now, and the rejection codes handed back when it is not. Nothing in
// this package touches the database or the clock.
package lifecycle

import "time"

// State is a student's position on a test's roster.
type State string

const (
	// StateNone means the student has no roster row for the test.
	StateNone     State = ""
	StateApplied  State = "applied"
	StateStarted  State = "started"
	StateFinished State = "finished"
)

// Ledger status strings paired 1:1 with roster states.
const (
	StatusApplied  = "Applied"
	StatusStarted  = "Started"
	StatusFinished = "Finished"
)

// LedgerStatus returns the ledger status string a roster state must agree with.
func (s State) LedgerStatus() string {
	switch s {
	case StateApplied:
		return StatusApplied
	case StateStarted:
		return StatusStarted
	case StateFinished:
		return StatusFinished
	}
	return ""
}

// Consistent reports whether a roster state and a ledger status describe the
// same position. A mismatch is a consistency fault, never auto-healed on read.
func Consistent(state State, status string) bool {
	return state.LedgerStatus() == status
}

// StatusFromTimestamps derives the ledger status implied by which timestamps
// are set. Used by reconciliation to cross-check a ledger row against itself.
func StatusFromTimestamps(startedOn, submittedOn *time.Time) string {
	switch {
	case submittedOn != nil:
		return StatusFinished
	case startedOn != nil:
		return StatusStarted
	default:
		return StatusApplied
	}
}

// Window is a test's scheduled run interval, closed at the start and open at
// the end: a start at exactly OpensAt is allowed, at exactly ClosesAt is not.
type Window struct {
	OpensAt  time.Time
	ClosesAt time.Time
}

// NotYetOpen reports whether now is before the window opens.
func (w Window) NotYetOpen(now time.Time) bool {
	return now.Before(w.OpensAt)
}

// Closed reports whether the window is over at now.
func (w Window) Closed(now time.Time) bool {
	return !now.Before(w.ClosesAt)
}
