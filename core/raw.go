package core

// RawRecord is the untyped payload a source fetcher returns, expressed as a
// tagged variant with explicit optional fields instead of a free-form map.
// The normalizer is the only component that interprets it; anything the
// normalizer cannot account for stays in Extra and is ignored.
type RawRecord struct {
	Source     SourceType
	SourceName string
	Topic      string
	Title      string
	Body       string
	URL        string
	Year       string

	// Facets maps facet name to raw value strings. A value may itself be a
	// prose block; the normalizer splits it into individual entries.
	Facets map[string][]string

	// Extra carries source-specific fields (authors, scores, post ids) that
	// are not part of the canonical schema.
	Extra map[string]string
}
