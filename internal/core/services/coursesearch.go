package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
	"github.com/lectern-labs/lectern-cli/internal/logger"
)

// DefaultMaxResults is the content search result cap.
const DefaultMaxResults = 5

// CourseSearchEngine performs the three-stage retrieval pipeline:
// resolve a fuzzy course reference against the catalog, build a
// metadata filter, then rank content chunks for the query.
type CourseSearchEngine struct {
	store      driven.VectorStore
	embedder   driven.EmbeddingService
	maxResults int
}

// NewCourseSearchEngine creates a search engine. maxResults <= 0 uses
// the default.
func NewCourseSearchEngine(
	store driven.VectorStore,
	embedder driven.EmbeddingService,
	maxResults int,
) *CourseSearchEngine {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &CourseSearchEngine{
		store:      store,
		embedder:   embedder,
		maxResults: maxResults,
	}
}

// Search resolves an optional course reference, constrains the content
// query accordingly, and ranks chunks for the query text. Failures are
// reported inside the result set as text so the model can react to a
// failed lookup instead of aborting the turn.
func (e *CourseSearchEngine) Search(
	ctx context.Context, query, courseName string, lessonNumber *int,
) domain.SearchResults {
	logger.Section("Course Search")
	logger.Debug("query=%q course=%q", query, courseName)

	var resolvedTitle string
	if courseName != "" {
		title, err := e.ResolveCourseName(ctx, courseName)
		if err != nil {
			logger.Debug("course resolution failed: %v", err)
			return domain.FailedSearch("No course found matching '%s'", courseName)
		}
		logger.Debug("resolved %q -> %q", courseName, title)
		resolvedTitle = title
	}

	filter := domain.NewSearchFilter(resolvedTitle, lessonNumber)

	// The content query embeds the original query text, never the
	// resolved course name.
	embedding, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return domain.FailedSearch("Search error: %v", err)
	}

	hits, err := e.store.QueryContent(ctx, embedding, e.maxResults, filter)
	if err != nil {
		return domain.FailedSearch("Search error: %v", err)
	}

	results := domain.SearchResults{}
	for _, hit := range hits {
		results.Documents = append(results.Documents, hit.Content)
		results.Metadata = append(results.Metadata, hit.Metadata)
		results.Distances = append(results.Distances, hit.Distance)
	}
	logger.Debug("content search returned %d chunks", len(results.Documents))
	return results
}

// ResolveCourseName maps a partial or differently-worded course
// reference to its canonical catalog title via top-1 similarity.
func (e *CourseSearchEngine) ResolveCourseName(ctx context.Context, courseName string) (string, error) {
	embedding, err := e.embedder.Embed(ctx, courseName)
	if err != nil {
		return "", fmt.Errorf("embed course name: %w", err)
	}

	hits, err := e.store.QueryCatalog(ctx, embedding, 1)
	if err != nil {
		return "", fmt.Errorf("catalog query: %w", err)
	}
	if len(hits) == 0 {
		return "", domain.ErrCourseNotFound
	}
	return hits[0].Entry.Title, nil
}

// Outline resolves a fuzzy course name and returns the full catalog
// entry for outline rendering.
func (e *CourseSearchEngine) Outline(ctx context.Context, courseName string) (*driven.CatalogEntry, error) {
	title, err := e.ResolveCourseName(ctx, courseName)
	if err != nil {
		return nil, err
	}
	entry, err := e.store.GetCatalogEntry(ctx, title)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("load catalog entry %q: %w", title, err)
	}
	return entry, nil
}

// LessonLink returns the lesson's URL, or "" when the course or lesson
// is unknown or carries no link.
func (e *CourseSearchEngine) LessonLink(ctx context.Context, courseTitle string, lessonNumber int) string {
	entry, err := e.store.GetCatalogEntry(ctx, courseTitle)
	if err != nil {
		return ""
	}
	for _, lesson := range entry.Lessons {
		if lesson.Number == lessonNumber {
			return lesson.Link
		}
	}
	return ""
}
