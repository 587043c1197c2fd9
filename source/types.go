package source

import (
	"context"
	"fmt"

	"github.com/poiesic/medcite/core"
)

// Fetcher retrieves raw records about a condition from one upstream source.
// Implementations must be thread-safe; the orchestrator runs them
// concurrently.
type Fetcher interface {
	// Name identifies the source in logs and failure reports.
	Name() string

	// Fetch retrieves raw records for the given condition. A source with
	// nothing to say about a condition returns an empty slice, not an error.
	Fetch(ctx context.Context, condition string) ([]*core.RawRecord, error)
}

// SourceError wraps a fetch failure with the source it came from.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
