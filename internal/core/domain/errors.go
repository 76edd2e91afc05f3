package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCourseNotFound indicates fuzzy course-name resolution failed:
	// no catalog entry was similar enough to the given name.
	ErrCourseNotFound = errors.New("no matching course found")

	// ErrMalformedDocument indicates a course document is missing its
	// mandatory title header or is otherwise unparseable. Ingestion of
	// that file aborts; other files continue.
	ErrMalformedDocument = errors.New("malformed course document")

	// ErrUnknownTool indicates dispatch to an unregistered tool name.
	// This is a schema/registration mismatch, a programming error
	// rather than a user-facing condition.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrGenerationFailed indicates the LLM transport failed. This is
	// terminal for the whole query; retries belong to the transport.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Both ingestion and retrieval require embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrUnsupportedFormat indicates no parser is registered for a
	// document's file extension.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)
