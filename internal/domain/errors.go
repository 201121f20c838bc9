package domain

import "errors"

var (
	// ErrNetwork wraps a transport failure that survived the automatic retry.
	ErrNetwork = errors.New("network failure")

	// ErrAuthExpired means a 401 could not be recovered by a token refresh.
	// Tokens are already cleared when this is returned.
	ErrAuthExpired = errors.New("authentication expired, sign in again")

	// ErrMalformedEvent marks a push message that failed shape validation.
	// It never reaches the user; the listener logs and drops it.
	ErrMalformedEvent = errors.New("malformed seat event")

	// Client-side preconditions. None of these ever produce a request.
	ErrPastStartTime   = errors.New("the start time has already passed")
	ErrEndBeforeStart  = errors.New("the end time must be after the start time")
	ErrNoSeatsSelected = errors.New("no seats selected")
	ErrPhoneRequired   = errors.New("a phone number must be registered before payment")
	ErrSeatInUse       = errors.New("seat is in use by another user")
	ErrSeatHeldByOther = errors.New("seat is being reserved by another user")
)

// ServerError carries a non-2xx rejection. Message is the server's own text
// and is surfaced to the user verbatim.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}
