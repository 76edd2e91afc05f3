// Package memory provides an in-memory vector store using brute-force
// cosine similarity. It backs tests and small corpora; the sqlite
// adapter provides persistence.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

type catalogRecord struct {
	entry     driven.CatalogEntry
	embedding []float32
}

type contentRecord struct {
	content   string
	metadata  domain.ChunkMetadata
	embedding []float32
}

// Store holds the catalog and content collections in memory.
type Store struct {
	mu      sync.RWMutex
	catalog map[string]catalogRecord // keyed by course title
	content map[string]contentRecord // keyed by "{title}_{index}"
}

// NewStore creates an empty in-memory vector store.
func NewStore() *Store {
	return &Store{
		catalog: make(map[string]catalogRecord),
		content: make(map[string]contentRecord),
	}
}

// UpsertCatalog stores a course entry keyed by title.
func (s *Store) UpsertCatalog(_ context.Context, entry driven.CatalogEntry, embedding []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog[entry.Title] = catalogRecord{entry: entry, embedding: embedding}
	return nil
}

// UpsertContent stores chunks keyed by their course-scoped ids.
func (s *Store) UpsertContent(_ context.Context, chunks []domain.CourseChunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunks and embeddings length mismatch: %d != %d", len(chunks), len(embeddings))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, chunk := range chunks {
		s.content[chunk.ID()] = contentRecord{
			content:   chunk.Content,
			metadata:  chunk.Metadata(),
			embedding: embeddings[i],
		}
	}
	return nil
}

// QueryCatalog returns the k nearest catalog entries.
func (s *Store) QueryCatalog(_ context.Context, embedding []float32, k int) ([]driven.CatalogHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hits := make([]driven.CatalogHit, 0, len(s.catalog))
	for _, rec := range s.catalog {
		hits = append(hits, driven.CatalogHit{
			Entry:    rec.entry,
			Distance: cosineDistance(embedding, rec.embedding),
		})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// QueryContent returns the k nearest content chunks matching the filter.
func (s *Store) QueryContent(
	_ context.Context, embedding []float32, k int, filter domain.SearchFilter,
) ([]driven.ContentHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hits := make([]driven.ContentHit, 0, len(s.content))
	for _, rec := range s.content {
		if !filter.Matches(rec.metadata) {
			continue
		}
		hits = append(hits, driven.ContentHit{
			Content:  rec.content,
			Metadata: rec.metadata,
			Distance: cosineDistance(embedding, rec.embedding),
		})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// GetCatalogEntry retrieves a catalog entry by exact title.
func (s *Store) GetCatalogEntry(_ context.Context, title string) (*driven.CatalogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.catalog[title]
	if !ok {
		return nil, domain.ErrNotFound
	}
	entry := rec.entry
	return &entry, nil
}

// ListCourseTitles returns all catalog titles.
func (s *Store) ListCourseTitles(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	titles := make([]string, 0, len(s.catalog))
	for title := range s.catalog {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles, nil
}

// CountContent reports the number of stored chunks.
func (s *Store) CountContent(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.content), nil
}

// Clear removes all entries from both collections.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = make(map[string]catalogRecord)
	s.content = make(map[string]contentRecord)
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

// cosineDistance returns 1 - cosine similarity, so smaller is closer.
func cosineDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
