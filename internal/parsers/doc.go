// Package parsers provides per-format course document parsers.
// Each parser owns one document format and is selected by file
// extension at the ingestion boundary, never inside the core.
package parsers
