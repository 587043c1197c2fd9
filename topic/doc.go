// Package topic interprets free-text medical queries. It recognizes which
// condition a query asks about and what kind of information is wanted
// (symptoms, treatments, causes, prevention), producing the lookup text the
// search layer runs against both indexes.
package topic
