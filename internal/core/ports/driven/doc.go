// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): embeddings, the vector store, the LLM
// transport, and session persistence.
package driven
