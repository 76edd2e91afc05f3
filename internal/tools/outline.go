package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
)

// OutlineProvider resolves a fuzzy course name to its catalog entry.
// Satisfied by services.CourseSearchEngine.
type OutlineProvider interface {
	Outline(ctx context.Context, courseName string) (*driven.CatalogEntry, error)
}

// CourseOutlineTool returns a course's full lesson structure.
type CourseOutlineTool struct {
	provider OutlineProvider
}

// NewCourseOutlineTool creates the outline tool.
func NewCourseOutlineTool(provider OutlineProvider) *CourseOutlineTool {
	return &CourseOutlineTool{provider: provider}
}

// Definition describes the tool for model planning.
func (t *CourseOutlineTool) Definition() driven.ToolDefinition {
	return driven.ToolDefinition{
		Name:        "get_course_outline",
		Description: "Get the complete outline and structure of a course including all lessons",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"course_name": map[string]any{
					"type":        "string",
					"description": "Course title (partial matches work, e.g. 'MCP', 'Prompt Caching')",
				},
			},
			"required": []string{"course_name"},
		},
	}
}

// Execute resolves the course and formats its outline. A course that
// cannot be resolved becomes result text, not an error.
func (t *CourseOutlineTool) Execute(ctx context.Context, args map[string]any) (Result, error) {
	courseName := stringArg(args, "course_name")

	entry, err := t.provider.Outline(ctx, courseName)
	if err != nil {
		return Result{Text: fmt.Sprintf("No course found matching '%s'.", courseName)}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s\n", entry.Title)
	if entry.Link != "" {
		fmt.Fprintf(&b, "Link: %s\n", entry.Link)
	}
	if entry.Instructor != "" {
		fmt.Fprintf(&b, "Instructor: %s\n", entry.Instructor)
	}
	if len(entry.Lessons) == 0 {
		b.WriteString("\nNo lessons found.")
	} else {
		fmt.Fprintf(&b, "\nLessons (%d total):", len(entry.Lessons))
		for _, lesson := range entry.Lessons {
			fmt.Fprintf(&b, "\n  Lesson %d: %s", lesson.Number, lesson.Title)
		}
	}

	return Result{Text: b.String()}, nil
}
