// Package normalize converts raw source records into canonical evidence
// records. It owns text cleanup (markup stripping, whitespace collapsing),
// topic canonicalization, facet entry splitting and deduplication, and
// URL-level deduplication of record batches.
package normalize
