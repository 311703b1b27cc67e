package lifecycle

import "errors"

// Code is a stable, machine-checkable reason a request was refused. The HTTP
// layer translates codes to statuses; the strings themselves are part of the
// API contract and must not change.
type Code string

const (
	CodeAlreadyApplied   Code = "AlreadyApplied"
	CodeAlreadyAttempted Code = "AlreadyAttempted"
	CodeNotApplied       Code = "NotApplied"
	CodeNotStarted       Code = "NotStarted"
	CodeNotYetOpen       Code = "NotYetOpen"
	CodeWindowClosed     Code = "WindowClosed"
	CodeTransitionFailed Code = "TransitionFailed"
	CodeReadFailed       Code = "ReadFailed"
)

// Rejection is an expected, user-facing refusal of a transition request.
type Rejection struct {
	Code    Code
	Message string
}

func (r *Rejection) Error() string { return r.Message }

var (
	ErrAlreadyApplied   = &Rejection{CodeAlreadyApplied, "you have already applied for this test"}
	ErrAlreadyAttempted = &Rejection{CodeAlreadyAttempted, "you have already attempted this test"}
	ErrNotApplied       = &Rejection{CodeNotApplied, "you have not applied for this test"}
	ErrNotStarted       = &Rejection{CodeNotStarted, "you have not started this test"}
	ErrNotYetOpen       = &Rejection{CodeNotYetOpen, "the test has not started yet"}
	ErrWindowClosed     = &Rejection{CodeWindowClosed, "the test is over"}
	ErrTransitionFailed = &Rejection{CodeTransitionFailed, "the request conflicted with another update, please retry"}
	ErrReadFailed       = &Rejection{CodeReadFailed, "could not read the current test state, please retry"}
)

// AsRejection unwraps err into a Rejection if one is in its chain.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
