package coursemd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern-labs/lectern-cli/internal/chunker"
	"github.com/lectern-labs/lectern-cli/internal/core/domain"
)

const sampleDoc = `# Advanced RAG Systems
Link: https://example.com/rag
Instructor: **Grace Hopper**

## Lesson 0: Overview
Lesson Link: https://example.com/rag/lesson-0
Retrieval augments generation. It grounds answers in documents.

## Lesson 1: Chunking
Chunks are *bounded* spans. See [the docs](https://example.com/docs) for details.
`

func newParser() *Parser {
	return New(chunker.New())
}

func TestParseHeaders(t *testing.T) {
	course, _, err := newParser().Parse(sampleDoc)
	require.NoError(t, err)
	assert.Equal(t, "Advanced RAG Systems", course.Title)
	assert.Equal(t, "https://example.com/rag", course.Link)
	assert.Equal(t, "Grace Hopper", course.Instructor)
}

func TestParseLessons(t *testing.T) {
	course, _, err := newParser().Parse(sampleDoc)
	require.NoError(t, err)
	require.Len(t, course.Lessons, 2)

	assert.Equal(t, 0, course.Lessons[0].Number)
	assert.Equal(t, "Overview", course.Lessons[0].Title)
	assert.Equal(t, "https://example.com/rag/lesson-0", course.Lessons[0].Link)

	assert.Equal(t, 1, course.Lessons[1].Number)
	assert.Equal(t, "Chunking", course.Lessons[1].Title)
	assert.Empty(t, course.Lessons[1].Link)
}

func TestParseStripsMarkdownFromChunks(t *testing.T) {
	_, chunks, err := newParser().Parse(sampleDoc)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for _, c := range chunks {
		assert.NotContains(t, c.Content, "*")
		assert.NotContains(t, c.Content, "](")
		assert.NotContains(t, c.Content, "Lesson Link:")
	}

	// Link text survives stripping.
	var lesson1 string
	for _, c := range chunks {
		if c.LessonNumber != nil && *c.LessonNumber == 1 {
			lesson1 += c.Content
		}
	}
	assert.Contains(t, lesson1, "the docs")
}

func TestParsePrefixAsymmetry(t *testing.T) {
	_, chunks, err := newParser().Parse(sampleDoc)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	assert.True(t, strings.HasPrefix(chunks[0].Content, "Lesson 0 content: "))

	for _, c := range chunks {
		if c.LessonNumber != nil && *c.LessonNumber == 1 {
			assert.True(t, strings.HasPrefix(c.Content,
				"Course Advanced RAG Systems Lesson 1 content: "))
			break
		}
	}
}

func TestParseMissingTitle(t *testing.T) {
	doc := "Link: https://example.com\n\n## Lesson 0: A\nBody."
	_, _, err := newParser().Parse(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestParseNoLessonHeadings(t *testing.T) {
	doc := "# Markerless\n\nJust some prose. It has no lesson structure at all."
	course, chunks, err := newParser().Parse(doc)
	require.NoError(t, err)
	assert.Empty(t, course.Lessons)
	require.NotEmpty(t, chunks)
	assert.Nil(t, chunks[0].LessonNumber)
}

func TestParseCodeBlocksExcluded(t *testing.T) {
	doc := "# Code Course\n\n## Lesson 1: Setup\nInstall the tool first.\n```\nsecret command here\n```\nThen continue reading."
	_, chunks, err := newParser().Parse(doc)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.NotContains(t, c.Content, "secret command")
	}
}
