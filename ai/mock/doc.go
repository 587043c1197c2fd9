// Package mock provides test doubles for the ai interfaces.
//
// The mock embedder produces deterministic unit vectors derived from the
// input text, so tests get stable similarity results without an embedding
// service. Behavior can be overridden per-test via function fields.
package mock
