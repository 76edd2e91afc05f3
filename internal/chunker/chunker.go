// Package chunker splits lesson text into overlapping, sentence-aligned,
// context-enriched chunks for the content collection.
package chunker

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
)

// DefaultChunkSize is the default maximum chunk length in characters.
const DefaultChunkSize = 800

// DefaultChunkOverlap is the default overlap between adjacent chunks.
const DefaultChunkOverlap = 100

var whitespaceRe = regexp.MustCompile(`\s+`)

// Chunker accumulates whole sentences into bounded chunks. Sentences
// are never split across chunks, so a chunk may exceed the configured
// size by at most one sentence.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a new chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must never reach chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// ChunkLesson chunks one lesson's raw text. The chunk index counter
// continues from startIndex across the whole course. Chunk 0 of a
// lesson is context-enriched: the document's first lesson gets the
// short "Lesson {N} content:" prefix while every later lesson gets the
// fuller "Course {title} Lesson {N} content:" form. The asymmetry is
// deliberate; changing it changes retrieval embeddings.
func (c *Chunker) ChunkLesson(
	text, courseTitle string, lessonNumber int, firstLesson bool, startIndex int,
) []domain.CourseChunk {
	pieces := c.ChunkText(text)
	if len(pieces) == 0 {
		return nil
	}

	if firstLesson {
		pieces[0] = fmt.Sprintf("Lesson %d content: %s", lessonNumber, pieces[0])
	} else {
		pieces[0] = fmt.Sprintf("Course %s Lesson %d content: %s", courseTitle, lessonNumber, pieces[0])
	}

	lesson := lessonNumber
	chunks := make([]domain.CourseChunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = domain.CourseChunk{
			Content:      piece,
			CourseTitle:  courseTitle,
			LessonNumber: &lesson,
			Index:        startIndex + i,
		}
	}
	return chunks
}

// ChunkCourseLevel chunks document text that belongs to no lesson.
// No context prefix is applied and the lesson number stays nil.
func (c *Chunker) ChunkCourseLevel(text, courseTitle string, startIndex int) []domain.CourseChunk {
	pieces := c.ChunkText(text)
	chunks := make([]domain.CourseChunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = domain.CourseChunk{
			Content:     piece,
			CourseTitle: courseTitle,
			Index:       startIndex + i,
		}
	}
	return chunks
}

// ChunkText splits raw text into bounded, overlapping chunk strings.
// Empty or whitespace-only text yields no chunks.
func (c *Chunker) ChunkText(text string) []string {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	size := 0

	for _, sentence := range sentences {
		added := len(sentence)
		if len(current) > 0 {
			added++ // joining space
		}

		if len(current) > 0 && size+added > c.chunkSize {
			chunks = append(chunks, strings.Join(current, " "))

			// Seed the next chunk with trailing sentences of the
			// previous one until the overlap budget is spent.
			current, size = c.overlapTail(current)
			added = len(sentence)
			if len(current) > 0 {
				added++
			}
		}

		current = append(current, sentence)
		size += added
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

// overlapTail takes sentences from the end of a closed chunk until
// their combined length reaches the overlap budget.
func (c *Chunker) overlapTail(closed []string) ([]string, int) {
	var tail []string
	size := 0
	for i := len(closed) - 1; i >= 0; i-- {
		need := len(closed[i])
		if len(tail) > 0 {
			need++
		}
		if size+need > c.overlap {
			break
		}
		tail = append([]string{closed[i]}, tail...)
		size += need
	}
	return tail, size
}

// SplitSentences breaks text into sentences. A boundary is a '.', '!'
// or '?' followed by whitespace and a capital letter. Likely
// abbreviations are excluded: a lowercase-dot-lowercase pattern
// ("e.g.") and a single capital letter before the dot (initials).
// This is a heuristic, not a full tokenizer; occasional false splits
// are accepted.
func SplitSentences(text string) []string {
	text = whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	if text == "" {
		return nil
	}

	runes := []rune(text)
	var sentences []string
	start := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 >= len(runes) || runes[i+1] != ' ' {
			continue
		}

		// Skip the whitespace run and require a capital next
		next := i + 1
		for next < len(runes) && runes[next] == ' ' {
			next++
		}
		if next >= len(runes) || !unicode.IsUpper(runes[next]) {
			continue
		}

		if r == '.' && looksLikeAbbreviation(runes, i) {
			continue
		}

		sentences = append(sentences, string(runes[start:i+1]))
		start = next
		i = next - 1
	}

	if start < len(runes) {
		if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
			sentences = append(sentences, tail)
		}
	}

	return sentences
}

// looksLikeAbbreviation reports whether the dot at position i ends an
// abbreviation rather than a sentence.
func looksLikeAbbreviation(runes []rune, i int) bool {
	// "e.g." / "i.e." - lowercase, dot, lowercase before this dot
	if i >= 3 &&
		unicode.IsLower(runes[i-3]) && runes[i-2] == '.' && unicode.IsLower(runes[i-1]) {
		return true
	}
	// "J." - single capital letter, as in initials
	if i >= 1 && unicode.IsUpper(runes[i-1]) &&
		(i == 1 || !unicode.IsLetter(runes[i-2])) {
		return true
	}
	return false
}
