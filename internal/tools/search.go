package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
)

// ContentSearcher resolves course names and queries the content
// collection. Satisfied by services.CourseSearchEngine.
type ContentSearcher interface {
	// Search runs the full search pipeline. Failures are reported inside
	// the result set so they can be surfaced to the model as text.
	Search(ctx context.Context, query, courseName string, lessonNumber *int) domain.SearchResults

	// LessonLink returns the lesson URL, or "" when unknown.
	LessonLink(ctx context.Context, courseTitle string, lessonNumber int) string
}

// CourseSearchTool searches course content with fuzzy course matching
// and optional lesson filtering.
type CourseSearchTool struct {
	searcher ContentSearcher
}

// NewCourseSearchTool creates the content search tool.
func NewCourseSearchTool(searcher ContentSearcher) *CourseSearchTool {
	return &CourseSearchTool{searcher: searcher}
}

// Definition describes the tool for model planning.
func (t *CourseSearchTool) Definition() driven.ToolDefinition {
	return driven.ToolDefinition{
		Name:        "search_course_content",
		Description: "Search course materials with smart course name matching and lesson filtering",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "What to search for in the course content",
				},
				"course_name": map[string]any{
					"type":        "string",
					"description": "Course title (partial matches work, e.g. 'MCP', 'Introduction')",
				},
				"lesson_number": map[string]any{
					"type":        "integer",
					"description": "Specific lesson number to search within (e.g. 1, 2, 3)",
				},
			},
			"required": []string{"query"},
		},
	}
}

// Execute runs the search and formats results for the model. Search
// failures become result text rather than errors so the model can
// explain them to the user.
func (t *CourseSearchTool) Execute(ctx context.Context, args map[string]any) (Result, error) {
	query := stringArg(args, "query")
	courseName := stringArg(args, "course_name")
	lessonNumber := intArg(args, "lesson_number")

	results := t.searcher.Search(ctx, query, courseName, lessonNumber)

	if results.Err != "" {
		return Result{Text: results.Err}, nil
	}

	if results.IsEmpty() {
		var filterInfo strings.Builder
		if courseName != "" {
			fmt.Fprintf(&filterInfo, " in course '%s'", courseName)
		}
		if lessonNumber != nil {
			fmt.Fprintf(&filterInfo, " in lesson %d", *lessonNumber)
		}
		return Result{Text: fmt.Sprintf("No relevant content found%s.", filterInfo.String())}, nil
	}

	return t.formatResults(ctx, results), nil
}

// formatResults renders each hit under a course/lesson header and
// collects attribution sources sorted by course then lesson.
func (t *CourseSearchTool) formatResults(ctx context.Context, results domain.SearchResults) Result {
	type sortableSource struct {
		source domain.Source
		course string
		lesson int
	}

	var formatted []string
	var sources []sortableSource

	for i, doc := range results.Documents {
		meta := results.Metadata[i]

		header := "[" + meta.CourseTitle
		sourceText := meta.CourseTitle
		// Course-level chunks sort after numbered lessons within a course.
		lessonKey := int(^uint(0) >> 1)
		var link string
		if meta.LessonNumber != nil {
			header += fmt.Sprintf(" - Lesson %d", *meta.LessonNumber)
			sourceText += fmt.Sprintf(" - Lesson %d", *meta.LessonNumber)
			lessonKey = *meta.LessonNumber
			link = t.searcher.LessonLink(ctx, meta.CourseTitle, *meta.LessonNumber)
		}
		header += "]"

		formatted = append(formatted, header+"\n"+doc)
		sources = append(sources, sortableSource{
			source: domain.Source{Text: sourceText, Link: link},
			course: meta.CourseTitle,
			lesson: lessonKey,
		})
	}

	sort.SliceStable(sources, func(i, j int) bool {
		if sources[i].course != sources[j].course {
			return sources[i].course < sources[j].course
		}
		return sources[i].lesson < sources[j].lesson
	})

	out := Result{Text: strings.Join(formatted, "\n\n")}
	for _, s := range sources {
		out.Sources = append(out.Sources, s.source)
	}
	return out
}
