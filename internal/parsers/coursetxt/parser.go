// Package coursetxt parses plain-text course transcripts.
//
// The format is three fixed header lines followed by lesson sections:
//
//	Course Title: Intro to Prompt Caching with Anthropic
//	Course Link: https://example.com/caching
//	Course Instructor: Jane Doe
//
//	Lesson 0: Introduction
//	Lesson Link: https://example.com/caching/lesson-0
//	<lesson text...>
package coursetxt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lectern-labs/lectern-cli/internal/chunker"
	"github.com/lectern-labs/lectern-cli/internal/core/domain"
)

// Header prefixes for the three fixed-format leading lines.
const (
	titlePrefix      = "Course Title:"
	linkPrefix       = "Course Link:"
	instructorPrefix = "Course Instructor:"
	lessonLinkPrefix = "Lesson Link:"
)

var lessonMarkerRe = regexp.MustCompile(`^Lesson\s+(\d+):\s*(.*)$`)

// Parser parses .txt course transcripts.
type Parser struct {
	chunker *chunker.Chunker
}

// New creates a transcript parser using the given chunker.
func New(c *chunker.Chunker) *Parser {
	return &Parser{chunker: c}
}

// Extensions returns the file extensions this parser handles.
func (p *Parser) Extensions() []string {
	return []string{".txt"}
}

// Parse converts a raw transcript into a Course and its chunks.
// The title header is mandatory; link and instructor are optional.
func (p *Parser) Parse(raw string) (*domain.Course, []domain.CourseChunk, error) {
	lines := strings.Split(raw, "\n")

	course := &domain.Course{}
	for i := 0; i < 3 && i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(line, titlePrefix):
			course.Title = strings.TrimSpace(strings.TrimPrefix(line, titlePrefix))
		case strings.HasPrefix(line, linkPrefix):
			course.Link = strings.TrimSpace(strings.TrimPrefix(line, linkPrefix))
		case strings.HasPrefix(line, instructorPrefix):
			course.Instructor = strings.TrimSpace(strings.TrimPrefix(line, instructorPrefix))
		}
	}
	if course.Title == "" {
		return nil, nil, fmt.Errorf("%w: missing %q header", domain.ErrMalformedDocument, titlePrefix)
	}

	var chunks []domain.CourseChunk
	var body []string

	inLesson := false
	lessonNumber := 0
	firstLesson := true
	chunkIndex := 0

	flush := func() {
		text := strings.Join(body, "\n")
		body = body[:0]
		if !inLesson {
			// Content before the first marker is dropped once lessons
			// exist; it only survives in the markerless fallback below.
			return
		}
		lessonChunks := p.chunker.ChunkLesson(text, course.Title, lessonNumber, firstLesson, chunkIndex)
		chunks = append(chunks, lessonChunks...)
		chunkIndex += len(lessonChunks)
		firstLesson = false
	}

	start := 3
	if len(lines) < start {
		start = len(lines)
	}
	for i := start; i < len(lines); i++ {
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
		lesson := domain.Lesson{Number: number, Title: strings.TrimSpace(m[2])}

		// The line right after a marker may carry the lesson link; it
		// is metadata, not lesson content.
		if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
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
	} else if text := strings.Join(body, "\n"); strings.TrimSpace(text) != "" {
		// No lesson markers at all: chunk the body as course-level
		// content with no lesson number.
		chunks = p.chunker.ChunkCourseLevel(text, course.Title, 0)
	}

	return course, chunks, nil
}
