package source

import "errors"

var (
	// ErrNoFetchers indicates an orchestrator was built without any sources.
	ErrNoFetchers = errors.New("no fetchers configured")

	// ErrInvalidMaxAttempts indicates a backoff policy with a non-positive
	// attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrUnexpectedStatus indicates a non-2xx HTTP response.
	ErrUnexpectedStatus = errors.New("unexpected http status")
)
