package search

import "github.com/poiesic/callsearch/core"

// SearchMonitor provides hooks to observe the scan.
// Implement this interface to track intermediate steps during search.
type SearchMonitor interface {
	Start(query string)
	AfterParse(terms []core.SearchTerm)
	UtteranceSkipped(transcriptKey string, index int)
	TranscriptMatched(transcriptKey string, matches int)
	Finish(result *core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                   {}
func (n *noopMonitor) AfterParse(_ []core.SearchTerm)   {}
func (n *noopMonitor) UtteranceSkipped(_ string, _ int) {}
func (n *noopMonitor) TranscriptMatched(_ string, _ int) {}
func (n *noopMonitor) Finish(_ *core.SearchResult)      {}
