package search

import "iter"

// Monitor provides hooks to observe the stages of a search.
// Implement this interface to track tokenization, candidate selection,
// and final ranking during a query.
type Monitor interface {
	Start(query string)
	AfterTokenize(terms []string)
	AfterCandidates(paths iter.Seq[string])
	Finish(results []Result)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                      {}
func (n *noopMonitor) AfterTokenize(_ []string)            {}
func (n *noopMonitor) AfterCandidates(_ iter.Seq[string])  {}
func (n *noopMonitor) Finish(_ []Result)                   {}
