package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput is the input schema for the content search tool.
type SearchInput struct {
	Query        string `json:"query" jsonschema:"what to search for in the course content"`
	CourseName   string `json:"course_name,omitempty" jsonschema:"course title to restrict the search to (partial matches work)"`
	LessonNumber *int   `json:"lesson_number,omitempty" jsonschema:"lesson number to restrict the search to"`
}

// SearchOutput is the output schema for the content search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single matched chunk.
type SearchResultOutput struct {
	CourseTitle  string  `json:"course_title"`
	LessonNumber *int    `json:"lesson_number,omitempty"`
	LessonLink   string  `json:"lesson_link,omitempty"`
	Content      string  `json:"content"`
	Distance     float64 `json:"distance"`
}

// OutlineInput is the input schema for the course outline tool.
type OutlineInput struct {
	CourseName string `json:"course_name" jsonschema:"course title to get the outline for (partial matches work)"`
}

// OutlineOutput is the output schema for the course outline tool.
type OutlineOutput struct {
	Title      string         `json:"title"`
	Link       string         `json:"link,omitempty"`
	Instructor string         `json:"instructor,omitempty"`
	Lessons    []LessonOutput `json:"lessons"`
}

// LessonOutput represents one lesson in an outline.
type LessonOutput struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Link   string `json:"link,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_course_content",
		Description: "Search course materials with smart course name matching and lesson filtering",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_course_outline",
		Description: "Get the complete outline and structure of a course including all lessons",
	}, s.handleOutline)
}

// handleSearch handles the content search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results := s.ports.Searcher.Search(ctx, input.Query, input.CourseName, input.LessonNumber)
	if results.Err != "" {
		return nil, SearchOutput{}, fmt.Errorf("%s", results.Err)
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results.Documents)),
		Count:   len(results.Documents),
	}
	for i, doc := range results.Documents {
		meta := results.Metadata[i]
		result := SearchResultOutput{
			CourseTitle:  meta.CourseTitle,
			LessonNumber: meta.LessonNumber,
			Content:      doc,
			Distance:     results.Distances[i],
		}
		if meta.LessonNumber != nil {
			result.LessonLink = s.ports.Searcher.LessonLink(ctx, meta.CourseTitle, *meta.LessonNumber)
		}
		output.Results[i] = result
	}

	return nil, output, nil
}

// handleOutline handles the course outline tool invocation.
func (s *Server) handleOutline(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OutlineInput,
) (*mcp.CallToolResult, OutlineOutput, error) {
	entry, err := s.ports.Outliner.Outline(ctx, input.CourseName)
	if err != nil {
		return nil, OutlineOutput{}, fmt.Errorf("no course found matching %q", input.CourseName)
	}

	output := OutlineOutput{
		Title:      entry.Title,
		Link:       entry.Link,
		Instructor: entry.Instructor,
		Lessons:    make([]LessonOutput, len(entry.Lessons)),
	}
	for i, lesson := range entry.Lessons {
		output.Lessons[i] = LessonOutput{
			Number: lesson.Number,
			Title:  lesson.Title,
			Link:   lesson.Link,
		}
	}

	return nil, output, nil
}
