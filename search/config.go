package search

// Config holds the tunable knobs for hybrid retrieval.
type Config struct {
	// StructuredBaseline is the relevance assigned to a structured index hit.
	// Exact topic and substring matches carry no similarity score of their
	// own, so they enter ranking at this fixed value.
	StructuredBaseline float32

	// MaxResults caps the merged result list. Each index is also queried
	// with this limit, so a result the structured index ranks highly cannot
	// be crowded out by semantic noise before the merge.
	MaxResults int
}

// DefaultConfig returns the ranking configuration used when none is provided.
func DefaultConfig() Config {
	return Config{
		StructuredBaseline: 0.8,
		MaxResults:         10,
	}
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.StructuredBaseline < 0 || c.StructuredBaseline > 1 {
		return ErrInvalidBaseline
	}
	if c.MaxResults < 1 {
		return ErrInvalidMaxResults
	}
	return nil
}
