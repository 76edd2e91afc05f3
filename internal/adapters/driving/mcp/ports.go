package mcp

import (
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driving"
	"github.com/lectern-labs/lectern-cli/internal/tools"
)

// Ports aggregates everything the MCP server needs. This provides a
// single injection point for dependency injection.
type Ports struct {
	// Searcher answers content queries.
	Searcher tools.ContentSearcher

	// Outliner resolves course outlines.
	Outliner tools.OutlineProvider

	// Ingest reports corpus analytics. Optional; the courses resource
	// returns an empty list without it.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Searcher == nil {
		return ErrMissingSearcher
	}
	if p.Outliner == nil {
		return ErrMissingOutliner
	}
	return nil
}
