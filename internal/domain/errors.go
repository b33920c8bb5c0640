package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrDuplicateMovie = errors.New("movie already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidInput   = errors.New("invalid input")
	ErrAlreadySaved   = errors.New("movie already saved")
	ErrNotSaved       = errors.New("movie not in saved list")
	ErrNoResults      = errors.New("no results")
	ErrUpstream       = errors.New("search provider unavailable")
	ErrUpstreamConfig = errors.New("search provider rejected credentials")
)

// NoResultsError carries the search provider's own message so clients
// see it verbatim. It matches ErrNoResults under errors.Is.
type NoResultsError struct {
	Message string
}

func (e *NoResultsError) Error() string { return e.Message }

func (e *NoResultsError) Is(target error) bool { return target == ErrNoResults }
