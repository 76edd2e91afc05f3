// Package services holds the core orchestration logic: course
// ingestion, the three-stage search engine, response generation with
// tool use, and session-aware question answering. Services talk to
// infrastructure only through the driven ports.
package services
