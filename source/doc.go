// Package source retrieves raw medical records from upstream providers.
//
// Each provider implements the Fetcher interface; the Orchestrator fans a
// condition out to all of them concurrently with per-source retries and an
// overall deadline. Network-backed fetchers share a rate-limited HTTP
// client. The curated fetcher serves a built-in knowledge base and always
// succeeds.
package source
