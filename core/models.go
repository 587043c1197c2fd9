package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is derived deterministically from content, never from a sequence.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// IDFromURL generates the canonical Evidence ID for a source URL.
// The URL is the unique key across the whole corpus, so ingesting the same
// URL twice always maps to the same record.
func IDFromURL(url string) ID {
	return IDFromContent(strings.TrimSpace(url))
}

// SourceType classifies where a piece of evidence was retrieved from.
type SourceType int

const (
	// SourceJournal represents peer-reviewed journal articles.
	SourceJournal SourceType = iota + 1
	// SourceHealthSite represents established medical reference sites.
	SourceHealthSite
	// SourceCommunity represents forum and social discussion posts.
	SourceCommunity
	// SourceCurated represents the built-in curated knowledge base.
	SourceCurated
)

// String returns the wire name of the source type.
func (s SourceType) String() string {
	switch s {
	case SourceJournal:
		return "journal"
	case SourceHealthSite:
		return "health_site"
	case SourceCommunity:
		return "community"
	case SourceCurated:
		return "curated"
	default:
		return "unknown"
	}
}

// Facet names recognized across all sources. Facet values are short strings,
// case-insensitively deduplicated with first-seen order preserved.
const (
	FacetSymptoms    = "symptoms"
	FacetCauses      = "causes"
	FacetTreatments  = "treatments"
	FacetPrevention  = "prevention"
	FacetDrugs       = "drugs"
	FacetSideEffects = "side_effects"
)

// FacetNames lists the recognized facet names in canonical order.
var FacetNames = []string{
	FacetSymptoms,
	FacetCauses,
	FacetTreatments,
	FacetPrevention,
	FacetDrugs,
	FacetSideEffects,
}

// Evidence is the canonical, deduplicated unit of retrieved medical
// information. After creation by the normalizer it is immutable and shared
// read-only by the structured and semantic indexes; updates are whole-record
// replacements keyed by URL.
type Evidence struct {
	Id          ID
	Topic       string // Normalized condition name (lower-cased, trimmed)
	Title       string
	Body        string
	Facets      map[string][]string
	Source      SourceType
	SourceName  string // Human-readable site/organization name, used for credibility weighting
	URL         string // Canonical locator, unique across the corpus
	Year        string
	RetrievedAt time.Time
	Vector      []float32 // Embedding vector for semantic search (populated by ingestion)
}

// FacetValues returns the values for a facet, or nil if absent.
func (e *Evidence) FacetValues(name string) []string {
	if e.Facets == nil {
		return nil
	}
	return e.Facets[name]
}

// Origin records which retrieval mechanism produced a ranked hit.
type Origin string

const (
	// OriginStructured marks hits from exact/substring lookup.
	OriginStructured Origin = "structured"
	// OriginSemantic marks hits from vector similarity lookup.
	OriginSemantic Origin = "semantic"
	// OriginBoth marks hits present in both indexes.
	OriginBoth Origin = "both"
)

// SemanticMatch is an evidence hit from vector similarity search.
// Distance is normalized to [0,1], smaller meaning more similar.
type SemanticMatch struct {
	Evidence *Evidence
	Distance float32
}

// RankedResult is evidence plus a single relevance scalar in [0,1] and the
// origin that produced it. An item present in both indexes keeps the higher
// relevance and an origin of OriginBoth.
type RankedResult struct {
	Evidence  *Evidence
	Relevance float32
	Origin    Origin
}

// CitationBundle is the formatted, capped list of source attributions for a
// query plus a single confidence scalar in [0,1]. It is query-scoped and
// never persisted.
type CitationBundle struct {
	Citations  []string
	Confidence float32
}

// EvidenceBundle is the final product of a retrieval: the merged ranked
// evidence with its citations and confidence.
type EvidenceBundle struct {
	RankedResults []*RankedResult `json:"rankedResults"`
	Citations     []string        `json:"citations"`
	Confidence    float32         `json:"confidence"`
}
