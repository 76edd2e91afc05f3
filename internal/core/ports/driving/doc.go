// Package driving provides interfaces exposed by the core to external
// actors (primary/inbound ports): the CLI, TUI, and MCP adapters.
package driving
