// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Lectern. It lets AI assistants query the ingested course corpus
// directly, without going through the chat pipeline.
package mcp

import "errors"

// ErrMissingSearcher is returned when the content searcher is not provided.
var ErrMissingSearcher = errors.New("mcp: content searcher is required")

// ErrMissingOutliner is returned when the outline provider is not provided.
var ErrMissingOutliner = errors.New("mcp: outline provider is required")
