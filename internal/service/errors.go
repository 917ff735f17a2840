package service

import "errors"

// Authorization and transport failures raised by the orchestrators.
// Lookup and uniqueness failures come from the repository package
// (ErrNotFound, ErrConflict, ErrIntegrity) and persistence failures
// from database.ErrWriteFailed.
var (
	// ErrForbidden means the caller is known but is neither an admin nor
	// the user the request is about.
	ErrForbidden = errors.New("forbidden")

	// ErrUnknownCaller means the users service has no record of the
	// caller.  It is never cached.
	ErrUnknownCaller = errors.New("unknown caller")

	// ErrUnverifiable means the users service could not be reached while
	// authorizing the caller.  It is not a denial.
	ErrUnverifiable = errors.New("caller could not be verified")

	// ErrUnavailable means a peer service other than the auth lookup was
	// unreachable or answered with a server error.
	ErrUnavailable = errors.New("peer service unavailable")

	// ErrBadRequest reports missing or invalid input.
	ErrBadRequest = errors.New("bad request")
)
