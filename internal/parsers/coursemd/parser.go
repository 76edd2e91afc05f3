// Package coursemd parses Markdown course transcripts.
//
// The expected shape is an H1 course title, optional Link/Instructor
// lines, then one H2 per lesson:
//
//	# Intro to Prompt Caching with Anthropic
//	Link: https://example.com/caching
//	Instructor: Jane Doe
//
//	## Lesson 0: Introduction
//	Lesson Link: https://example.com/caching/lesson-0
//	<lesson text in markdown...>
//
// Lesson bodies have their markdown formatting stripped before
// chunking so embeddings see prose, not syntax.
package coursemd

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lectern-labs/lectern-cli/internal/chunker"
	"github.com/lectern-labs/lectern-cli/internal/core/domain"
)

const (
	linkPrefix       = "Link:"
	instructorPrefix = "Instructor:"
	lessonLinkPrefix = "Lesson Link:"
)

var (
	titleRe        = regexp.MustCompile(`^#\s+(.+)$`)
	lessonMarkerRe = regexp.MustCompile(`^#{2,6}\s+Lesson\s+(\d+):\s*(.*)$`)
)

// Parser parses .md course transcripts.
type Parser struct {
	chunker *chunker.Chunker
}

// New creates a markdown transcript parser using the given chunker.
func New(c *chunker.Chunker) *Parser {
	return &Parser{chunker: c}
}

// Extensions returns the file extensions this parser handles.
func (p *Parser) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Parse converts a raw markdown transcript into a Course and its
// chunks. The H1 title is mandatory.
func (p *Parser) Parse(raw string) (*domain.Course, []domain.CourseChunk, error) {
	lines := strings.Split(raw, "\n")

	course := &domain.Course{}
	bodyStart := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if m := titleRe.FindStringSubmatch(trimmed); m != nil {
			course.Title = strings.TrimSpace(m[1])
			bodyStart = i + 1
			break
		}
		if trimmed != "" {
			break
		}
	}
	if course.Title == "" {
		return nil, nil, fmt.Errorf("%w: missing H1 course title", domain.ErrMalformedDocument)
	}

	// Optional header lines between the title and the first lesson.
	i := bodyStart
	for ; i < len(lines); i++ {
		trimmed := strings.TrimSpace(stripInline(lines[i]))
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, linkPrefix) {
			course.Link = strings.TrimSpace(strings.TrimPrefix(trimmed, linkPrefix))
			continue
		}
		if strings.HasPrefix(trimmed, instructorPrefix) {
			course.Instructor = strings.TrimSpace(strings.TrimPrefix(trimmed, instructorPrefix))
			continue
		}
		break
	}
	bodyStart = i

	var chunks []domain.CourseChunk
	var body []string

	inLesson := false
	lessonNumber := 0
	firstLesson := true
	chunkIndex := 0

	flush := func() {
		text := stripMarkdown(strings.Join(body, "\n"))
		body = body[:0]
		if !inLesson {
			return
		}
		lessonChunks := p.chunker.ChunkLesson(text, course.Title, lessonNumber, firstLesson, chunkIndex)
		chunks = append(chunks, lessonChunks...)
		chunkIndex += len(lessonChunks)
		firstLesson = false
	}

	for i := bodyStart; i < len(lines); i++ {
		line := lines[i]
		m := lessonMarkerRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			body = append(body, line)
			continue
		}

		flush()

		number, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: bad lesson number %q", domain.ErrMalformedDocument, m[1])
		}
		lesson := domain.Lesson{Number: number, Title: strings.TrimSpace(stripInline(m[2]))}

		if i+1 < len(lines) {
			next := strings.TrimSpace(stripInline(lines[i+1]))
			if strings.HasPrefix(next, lessonLinkPrefix) {
				lesson.Link = strings.TrimSpace(strings.TrimPrefix(next, lessonLinkPrefix))
				i++
			}
		}

		course.Lessons = append(course.Lessons, lesson)
		inLesson = true
		lessonNumber = number
	}

	if inLesson {
		flush()
	} else if text := stripMarkdown(strings.Join(body, "\n")); text != "" {
		chunks = p.chunker.ChunkCourseLevel(text, course.Title, 0)
	}

	return course, chunks, nil
}

var (
	codeBlockRe  = regexp.MustCompile("(?s)```[^`]*```")
	inlineCodeRe = regexp.MustCompile("`[^`]+`")
	imageRe      = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquoteRe = regexp.MustCompile(`(?m)^>\s*`)
	hrRe         = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	listMarkerRe = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberedRe   = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	newlinesRe   = regexp.MustCompile(`\n{3,}`)
)

// stripInline removes emphasis and link syntax from a single line,
// keeping the text.
func stripInline(line string) string {
	line = linkRe.ReplaceAllString(line, "$1")
	line = strings.ReplaceAll(line, "**", "")
	line = strings.ReplaceAll(line, "__", "")
	line = strings.ReplaceAll(line, "*", "")
	return line
}

// stripMarkdown removes common markdown formatting for plain text.
// Simplified; handles the common cases.
func stripMarkdown(content string) string {
	content = codeBlockRe.ReplaceAllString(content, "")
	content = inlineCodeRe.ReplaceAllString(content, "")
	content = imageRe.ReplaceAllString(content, "")
	content = linkRe.ReplaceAllString(content, "$1")
	content = headingRe.ReplaceAllString(content, "")

	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")
	content = strings.ReplaceAll(content, "*", "")

	content = blockquoteRe.ReplaceAllString(content, "")
	content = hrRe.ReplaceAllString(content, "")
	content = listMarkerRe.ReplaceAllString(content, "")
	content = numberedRe.ReplaceAllString(content, "")
	content = newlinesRe.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}
