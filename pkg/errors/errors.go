package pollpulse_errors

import "errors"

// Domain errors. Handlers translate these to HTTP responses; anything
// not in this list surfaces as a generic internal error.
var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("invalid input")
	ErrPollInactive   = errors.New("poll is not accepting votes")
	ErrOptionNotFound = errors.New("option not found")
	ErrOptionMismatch = errors.New("option does not belong to this poll")
	ErrDuplicateVote  = errors.New("already voted on this poll")
	ErrForbidden      = errors.New("forbidden")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrAlreadyExists  = errors.New("already exists")
)
