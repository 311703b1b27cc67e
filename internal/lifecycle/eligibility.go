package lifecycle

import "time"

// CheckApply decides whether a student in the given roster state may apply.
func CheckApply(current State) error {
	switch current {
	case StateApplied:
		return ErrAlreadyApplied
	case StateStarted, StateFinished:
		return ErrAlreadyAttempted
	}
	return nil
}

// CheckStart decides whether a student may start their attempt at now.
// Ordering matters: roster-state rejections are reported before window ones,
// so a student who already attempted sees AlreadyAttempted even after close.
func CheckStart(current State, w Window, now time.Time) error {
	switch current {
	case StateStarted, StateFinished:
		return ErrAlreadyAttempted
	case StateNone:
		return ErrNotApplied
	}
	if w.NotYetOpen(now) {
		return ErrNotYetOpen
	}
	if w.Closed(now) {
		return ErrWindowClosed
	}
	return nil
}

// CheckFinish decides whether a student may submit their attempt. A started
// attempt may be submitted after the window closes: the student gained entry
// inside the window and refusing the submit would strand the attempt.
func CheckFinish(current State) error {
	if current != StateStarted {
		return ErrNotStarted
	}
	return nil
}
