// Package reembed regenerates embedding vectors for every evidence record
// in a corpus. It is used after switching embedding models, when stored
// vectors are no longer comparable to vectors produced at query time.
//
// Records are processed in batches with retry on embedding failures, and
// progress is reported to a configurable writer.
package reembed
