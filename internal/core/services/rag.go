package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driving"
	"github.com/lectern-labs/lectern-cli/internal/logger"
	"github.com/lectern-labs/lectern-cli/internal/parsers"
)

// Ensure RAGService implements the driving ports.
var (
	_ driving.IngestService    = (*RAGService)(nil)
	_ driving.AssistantService = (*RAGService)(nil)
)

// RAGService orchestrates ingestion and question answering over the
// course corpus.
type RAGService struct {
	parsers   *parsers.Registry
	store     driven.VectorStore
	embedder  driven.EmbeddingService
	generator *ResponseGenerator
	sessions  driven.SessionStore

	// ingestMu serializes ingestion per course title so concurrent
	// passes over the same document cannot double-insert.
	ingestMu sync.Map // course title -> *sync.Mutex
}

// NewRAGService wires the orchestrator.
func NewRAGService(
	parserRegistry *parsers.Registry,
	store driven.VectorStore,
	embedder driven.EmbeddingService,
	generator *ResponseGenerator,
	sessions driven.SessionStore,
) *RAGService {
	return &RAGService{
		parsers:   parserRegistry,
		store:     store,
		embedder:  embedder,
		generator: generator,
		sessions:  sessions,
	}
}

// AddCourseFile ingests one course document. A course title already
// present in the catalog is skipped, making re-runs idempotent.
func (s *RAGService) AddCourseFile(ctx context.Context, path string) (*driving.IngestStats, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	parser, err := s.parsers.ForFile(path)
	if err != nil {
		return nil, err
	}

	course, chunks, err := parser.Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	lock := s.titleLock(course.Title)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.store.GetCatalogEntry(ctx, course.Title); err == nil {
		logger.Debug("course %q already ingested, skipping", course.Title)
		return &driving.IngestStats{}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("catalog lookup %q: %w", course.Title, err)
	}

	titleEmbedding, err := s.embedder.Embed(ctx, course.Title)
	if err != nil {
		return nil, fmt.Errorf("embed title %q: %w", course.Title, err)
	}
	entry := driven.CatalogEntry{
		Title:      course.Title,
		Link:       course.Link,
		Instructor: course.Instructor,
		Lessons:    course.Lessons,
	}
	if err := s.store.UpsertCatalog(ctx, entry, titleEmbedding); err != nil {
		return nil, fmt.Errorf("store course %q: %w", course.Title, err)
	}

	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i, chunk := range chunks {
			texts[i] = chunk.Content
		}
		embeddings, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed chunks for %q: %w", course.Title, err)
		}
		if err := s.store.UpsertContent(ctx, chunks, embeddings); err != nil {
			return nil, fmt.Errorf("store chunks for %q: %w", course.Title, err)
		}
	}

	logger.Info("ingested %q: %d chunks", course.Title, len(chunks))
	return &driving.IngestStats{CoursesAdded: 1, ChunksAdded: len(chunks)}, nil
}

// AddCourseFolder ingests every supported document in a folder.
// A failure local to one file is logged and contained; the pass
// continues with the remaining files.
func (s *RAGService) AddCourseFolder(ctx context.Context, dir string, clearExisting bool) (*driving.IngestStats, error) {
	if clearExisting {
		logger.Info("clearing existing corpus before ingest")
		if err := s.store.Clear(ctx); err != nil {
			return nil, fmt.Errorf("clear store: %w", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", dir, err)
	}

	stats := &driving.IngestStats{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !s.parsers.Supported(path) {
			continue
		}
		fileStats, err := s.AddCourseFile(ctx, path)
		if err != nil {
			logger.Warn("skipping %s: %v", entry.Name(), err)
			continue
		}
		stats.CoursesAdded += fileStats.CoursesAdded
		stats.ChunksAdded += fileStats.ChunksAdded
	}
	return stats, nil
}

// Analytics reports course count and titles, sorted.
func (s *RAGService) Analytics(ctx context.Context) (*driving.CourseAnalytics, error) {
	titles, err := s.store.ListCourseTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	sort.Strings(titles)
	return &driving.CourseAnalytics{
		TotalCourses: len(titles),
		CourseTitles: titles,
	}, nil
}

// Answer processes one query. A missing session id creates a new
// session lazily; the completed exchange is appended to it afterwards.
func (s *RAGService) Answer(ctx context.Context, query, sessionID string) (*driving.AnswerResult, error) {
	if sessionID == "" {
		id, err := s.sessions.Create(ctx)
		if err != nil {
			return nil, fmt.Errorf("create session: %w", err)
		}
		sessionID = id
	}

	history, err := s.sessions.History(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	result, err := s.generator.Generate(ctx, query, history)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.AddExchange(ctx, sessionID, query, result.Answer); err != nil {
		return nil, fmt.Errorf("record exchange: %w", err)
	}

	return &driving.AnswerResult{
		Answer:    result.Answer,
		Sources:   result.Sources,
		SessionID: sessionID,
	}, nil
}

func (s *RAGService) titleLock(title string) *sync.Mutex {
	lock, _ := s.ingestMu.LoadOrStore(title, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
