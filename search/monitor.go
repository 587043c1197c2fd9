package search

import "github.com/poiesic/medcite/core"

// SearchMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterStructuredSearch(records []*core.Evidence)
	AfterSemanticSearch(matches []*core.SemanticMatch)
	IndexDegraded(origin core.Origin, err error)
	Finish(results []*core.RankedResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                              {}
func (n *noopMonitor) AfterStructuredSearch(_ []*core.Evidence)    {}
func (n *noopMonitor) AfterSemanticSearch(_ []*core.SemanticMatch) {}
func (n *noopMonitor) IndexDegraded(_ core.Origin, _ error)        {}
func (n *noopMonitor) Finish(_ []*core.RankedResult)               {}
