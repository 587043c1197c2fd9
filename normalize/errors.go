package normalize

import "errors"

var (
	// ErrRejected indicates a raw record failed normalization.
	ErrRejected = errors.New("record rejected")

	// ErrMissingTopic indicates a raw record with no topic.
	ErrMissingTopic = errors.New("missing topic")

	// ErrMissingTitle indicates a raw record with no title.
	ErrMissingTitle = errors.New("missing title")

	// ErrMissingURL indicates a raw record with no URL.
	ErrMissingURL = errors.New("missing url")

	// ErrMissingSourceName indicates a raw record with no source name.
	ErrMissingSourceName = errors.New("missing source name")
)
