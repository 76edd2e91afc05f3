package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
)

func intPtr(n int) *int { return &n }

// fakeSearcher returns canned results and records the arguments of the
// last Search call.
type fakeSearcher struct {
	results domain.SearchResults
	links   map[string]string

	gotQuery  string
	gotCourse string
	gotLesson *int
}

func (f *fakeSearcher) Search(_ context.Context, query, courseName string, lessonNumber *int) domain.SearchResults {
	f.gotQuery = query
	f.gotCourse = courseName
	f.gotLesson = lessonNumber
	return f.results
}

func (f *fakeSearcher) LessonLink(_ context.Context, courseTitle string, lessonNumber int) string {
	return f.links[courseTitle]
}

type fakeOutliner struct {
	entry *driven.CatalogEntry
	err   error
}

func (f *fakeOutliner) Outline(_ context.Context, _ string) (*driven.CatalogEntry, error) {
	return f.entry, f.err
}

func TestRegistryDispatch(t *testing.T) {
	searcher := &fakeSearcher{results: domain.SearchResults{
		Documents: []string{"body"},
		Metadata:  []domain.ChunkMetadata{{CourseTitle: "C", LessonNumber: intPtr(1)}},
		Distances: []float64{0.1},
	}}

	r := NewRegistry()
	require.NoError(t, r.Register(NewCourseSearchTool(searcher)))

	result, err := r.Execute(context.Background(), "search_course_content",
		map[string]any{"query": "q", "course_name": "C", "lesson_number": float64(1)})
	require.NoError(t, err)
	assert.Contains(t, result.Text, "[C - Lesson 1]")

	assert.Equal(t, "q", searcher.gotQuery)
	assert.Equal(t, "C", searcher.gotCourse)
	require.NotNil(t, searcher.gotLesson)
	assert.Equal(t, 1, *searcher.gotLesson)
}

func TestRegistryUnknownTool(t *testing.T) {
	r := NewRegistry()
	_, err := r.Execute(context.Background(), "nope", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownTool)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	tool := NewCourseSearchTool(&fakeSearcher{})
	require.NoError(t, r.Register(tool))
	assert.Error(t, r.Register(tool))
}

func TestRegistryDefinitionsOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(NewCourseSearchTool(&fakeSearcher{})))
	require.NoError(t, r.Register(NewCourseOutlineTool(&fakeOutliner{})))

	defs := r.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "search_course_content", defs[0].Name)
	assert.Equal(t, "get_course_outline", defs[1].Name)
}

func TestSearchFormatsHeadersAndSources(t *testing.T) {
	searcher := &fakeSearcher{
		results: domain.SearchResults{
			Documents: []string{"second doc", "first doc", "loose doc"},
			Metadata: []domain.ChunkMetadata{
				{CourseTitle: "B Course", LessonNumber: intPtr(2)},
				{CourseTitle: "A Course", LessonNumber: intPtr(1)},
				{CourseTitle: "A Course"},
			},
			Distances: []float64{0.1, 0.2, 0.3},
		},
		links: map[string]string{"A Course": "https://a/lesson"},
	}

	result, err := NewCourseSearchTool(searcher).Execute(context.Background(),
		map[string]any{"query": "q"})
	require.NoError(t, err)

	// Result text keeps retrieval order with context headers.
	assert.Equal(t,
		"[B Course - Lesson 2]\nsecond doc\n\n[A Course - Lesson 1]\nfirst doc\n\n[A Course]\nloose doc",
		result.Text)

	// Sources are sorted by course then lesson; course-level entries
	// trail their course's numbered lessons.
	require.Len(t, result.Sources, 3)
	assert.Equal(t, "A Course - Lesson 1", result.Sources[0].Text)
	assert.Equal(t, "https://a/lesson", result.Sources[0].Link)
	assert.Equal(t, "A Course", result.Sources[1].Text)
	assert.Empty(t, result.Sources[1].Link)
	assert.Equal(t, "B Course - Lesson 2", result.Sources[2].Text)
}

func TestSearchEmptyResultMessages(t *testing.T) {
	cases := []struct {
		name string
		args map[string]any
		want string
	}{
		{"no filters", map[string]any{"query": "q"}, "No relevant content found."},
		{"course filter", map[string]any{"query": "q", "course_name": "MCP"},
			"No relevant content found in course 'MCP'."},
		{"both filters", map[string]any{"query": "q", "course_name": "MCP", "lesson_number": float64(3)},
			"No relevant content found in course 'MCP' in lesson 3."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := NewCourseSearchTool(&fakeSearcher{}).Execute(context.Background(), tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.Text)
			assert.Empty(t, result.Sources)
		})
	}
}

func TestSearchSurfacesFailureAsText(t *testing.T) {
	searcher := &fakeSearcher{
		results: domain.FailedSearch("No course found matching '%s'", "ghost"),
	}
	result, err := NewCourseSearchTool(searcher).Execute(context.Background(),
		map[string]any{"query": "q", "course_name": "ghost"})
	require.NoError(t, err)
	assert.Equal(t, "No course found matching 'ghost'", result.Text)
}

func TestOutlineFormatting(t *testing.T) {
	outliner := &fakeOutliner{entry: &driven.CatalogEntry{
		Title:      "Deep Dive",
		Link:       "https://example.com/dd",
		Instructor: "Grace",
		Lessons: []domain.Lesson{
			{Number: 0, Title: "Start"},
			{Number: 1, Title: "Middle"},
		},
	}}

	result, err := NewCourseOutlineTool(outliner).Execute(context.Background(),
		map[string]any{"course_name": "deep"})
	require.NoError(t, err)
	assert.Equal(t,
		"Course: Deep Dive\nLink: https://example.com/dd\nInstructor: Grace\n\nLessons (2 total):\n  Lesson 0: Start\n  Lesson 1: Middle",
		result.Text)
}

func TestOutlineCourseNotFound(t *testing.T) {
	outliner := &fakeOutliner{err: domain.ErrCourseNotFound}
	result, err := NewCourseOutlineTool(outliner).Execute(context.Background(),
		map[string]any{"course_name": "ghost"})
	require.NoError(t, err)
	assert.Equal(t, "No course found matching 'ghost'.", result.Text)
}

func TestOutlineNoLessons(t *testing.T) {
	outliner := &fakeOutliner{entry: &driven.CatalogEntry{Title: "Bare"}}
	result, err := NewCourseOutlineTool(outliner).Execute(context.Background(),
		map[string]any{"course_name": "bare"})
	require.NoError(t, err)
	assert.Equal(t, "Course: Bare\n\nNo lessons found.", result.Text)
}
