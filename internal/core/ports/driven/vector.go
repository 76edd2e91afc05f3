package driven

import (
	"context"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
)

// CatalogEntry is one course-level record in the catalog collection.
// The stored embedding is of the course title text; the metadata carries
// the full course structure for outline rendering and lesson links.
type CatalogEntry struct {
	Title      string
	Link       string
	Instructor string
	Lessons    []domain.Lesson
}

// CatalogHit is a catalog nearest-neighbour result.
type CatalogHit struct {
	Entry    CatalogEntry
	Distance float64
}

// ContentHit is a content nearest-neighbour result.
type ContentHit struct {
	Content  string
	Metadata domain.ChunkMetadata
	Distance float64
}

// VectorStore maintains the two logical collections of the search
// engine: course metadata (catalog) and content chunks. Hits are
// returned in ascending-distance order (most similar first).
type VectorStore interface {
	// UpsertCatalog stores a course entry keyed by title.
	UpsertCatalog(ctx context.Context, entry CatalogEntry, embedding []float32) error

	// UpsertContent stores chunks keyed by "{courseTitle}_{chunkIndex}".
	// len(chunks) must equal len(embeddings).
	UpsertContent(ctx context.Context, chunks []domain.CourseChunk, embeddings [][]float32) error

	// QueryCatalog returns the k nearest catalog entries.
	QueryCatalog(ctx context.Context, embedding []float32, k int) ([]CatalogHit, error)

	// QueryContent returns the k nearest content chunks satisfying the
	// metadata filter. An empty slice is a valid, non-error result.
	QueryContent(ctx context.Context, embedding []float32, k int, filter domain.SearchFilter) ([]ContentHit, error)

	// GetCatalogEntry retrieves a catalog entry by exact title.
	// Returns domain.ErrNotFound when the title is absent.
	GetCatalogEntry(ctx context.Context, title string) (*CatalogEntry, error)

	// ListCourseTitles returns all catalog titles.
	ListCourseTitles(ctx context.Context) ([]string, error)

	// CountContent reports the number of stored chunks.
	CountContent(ctx context.Context) (int, error)

	// Clear removes all entries from both collections.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
