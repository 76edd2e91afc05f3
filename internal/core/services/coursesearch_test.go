package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern-labs/lectern-cli/internal/adapters/driven/vectorstore/memory"
	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
)

func intPtr(n int) *int { return &n }

// fakeEmbedder maps known texts to fixed vectors so similarity is
// fully deterministic in tests.
type fakeEmbedder struct {
	vectors map[string][]float32
	failAll bool
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.failAll {
		return nil, fmt.Errorf("embedding backend down")
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 1}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := f.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int              { return 3 }
func (f *fakeEmbedder) ModelName() string            { return "fake" }
func (f *fakeEmbedder) Ping(_ context.Context) error { return nil }
func (f *fakeEmbedder) Close() error                 { return nil }

func seedEngine(t *testing.T) (*CourseSearchEngine, *fakeEmbedder) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"Intro to Prompt Caching with Anthropic": {1, 0, 0},
		"Advanced RAG Systems":                   {0, 1, 0},
		"Prompt Caching":                         {0.9, 0.1, 0},
		"how does caching work":                  {1, 0, 0},
	}}

	require.NoError(t, store.UpsertCatalog(ctx, driven.CatalogEntry{
		Title: "Intro to Prompt Caching with Anthropic",
		Lessons: []domain.Lesson{
			{Number: 0, Title: "Intro", Link: "https://example.com/caching/0"},
			{Number: 1, Title: "Basics"},
		},
	}, []float32{1, 0, 0}))
	require.NoError(t, store.UpsertCatalog(ctx, driven.CatalogEntry{
		Title: "Advanced RAG Systems",
	}, []float32{0, 1, 0}))

	chunks := []domain.CourseChunk{
		{Content: "caching chunk", CourseTitle: "Intro to Prompt Caching with Anthropic", LessonNumber: intPtr(0), Index: 0},
		{Content: "more caching", CourseTitle: "Intro to Prompt Caching with Anthropic", LessonNumber: intPtr(1), Index: 1},
		{Content: "rag chunk", CourseTitle: "Advanced RAG Systems", LessonNumber: intPtr(1), Index: 0},
	}
	embeddings := [][]float32{{1, 0, 0}, {0.8, 0.2, 0}, {0, 1, 0}}
	require.NoError(t, store.UpsertContent(ctx, chunks, embeddings))

	return NewCourseSearchEngine(store, embedder, 5), embedder
}

func TestResolveCourseNameFuzzy(t *testing.T) {
	engine, _ := seedEngine(t)

	title, err := engine.ResolveCourseName(context.Background(), "Prompt Caching")
	require.NoError(t, err)
	assert.Equal(t, "Intro to Prompt Caching with Anthropic", title)
}

func TestResolveCourseNameEmptyCatalog(t *testing.T) {
	engine := NewCourseSearchEngine(memory.NewStore(), &fakeEmbedder{}, 5)

	_, err := engine.ResolveCourseName(context.Background(), "anything")
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestSearchGlobal(t *testing.T) {
	engine, _ := seedEngine(t)

	results := engine.Search(context.Background(), "how does caching work", "", nil)
	require.Empty(t, results.Err)
	require.Len(t, results.Documents, 3)
	assert.Equal(t, "caching chunk", results.Documents[0])
	for i := 1; i < len(results.Distances); i++ {
		assert.GreaterOrEqual(t, results.Distances[i], results.Distances[i-1])
	}
}

func TestSearchWithCourseFilter(t *testing.T) {
	engine, _ := seedEngine(t)

	results := engine.Search(context.Background(), "how does caching work", "Prompt Caching", nil)
	require.Empty(t, results.Err)
	require.Len(t, results.Documents, 2)
	for _, meta := range results.Metadata {
		assert.Equal(t, "Intro to Prompt Caching with Anthropic", meta.CourseTitle)
	}
}

func TestSearchWithCourseAndLessonFilter(t *testing.T) {
	engine, _ := seedEngine(t)

	results := engine.Search(context.Background(), "how does caching work", "Prompt Caching", intPtr(1))
	require.Empty(t, results.Err)
	require.Len(t, results.Documents, 1)
	assert.Equal(t, "more caching", results.Documents[0])
}

func TestSearchUnresolvableCourseShortCircuits(t *testing.T) {
	engine := NewCourseSearchEngine(memory.NewStore(), &fakeEmbedder{}, 5)

	results := engine.Search(context.Background(), "anything", "Nonexistent Topic", nil)
	assert.Equal(t, "No course found matching 'Nonexistent Topic'", results.Err)
	assert.Empty(t, results.Documents)
}

func TestSearchEmptyMatchIsNotError(t *testing.T) {
	engine, _ := seedEngine(t)

	results := engine.Search(context.Background(), "how does caching work", "Prompt Caching", intPtr(42))
	assert.Empty(t, results.Err)
	assert.True(t, results.IsEmpty())
}

func TestSearchEmbeddingFailureBecomesErrText(t *testing.T) {
	engine, embedder := seedEngine(t)
	embedder.failAll = true

	results := engine.Search(context.Background(), "query", "", nil)
	assert.Contains(t, results.Err, "Search error")
}

func TestOutlineResolvesFuzzyName(t *testing.T) {
	engine, _ := seedEngine(t)

	entry, err := engine.Outline(context.Background(), "Prompt Caching")
	require.NoError(t, err)
	assert.Equal(t, "Intro to Prompt Caching with Anthropic", entry.Title)
	assert.Len(t, entry.Lessons, 2)
}

func TestLessonLink(t *testing.T) {
	engine, _ := seedEngine(t)
	ctx := context.Background()

	assert.Equal(t, "https://example.com/caching/0",
		engine.LessonLink(ctx, "Intro to Prompt Caching with Anthropic", 0))
	assert.Empty(t, engine.LessonLink(ctx, "Intro to Prompt Caching with Anthropic", 1))
	assert.Empty(t, engine.LessonLink(ctx, "Unknown Course", 0))
}
