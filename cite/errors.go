package cite

import "errors"

var (
	// ErrInvalidMaxCitations indicates a non-positive citation cap.
	ErrInvalidMaxCitations = errors.New("max citations must be positive")

	// ErrInvalidWeight indicates a scoring weight outside [0,1].
	ErrInvalidWeight = errors.New("scoring weights must be in [0,1]")
)
