package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSentences(t *testing.T) {
	t.Run("splits on terminators before capitals", func(t *testing.T) {
		got := SplitSentences("This is one. This is two! Is this three? This is four.")
		require.Len(t, got, 4)
		assert.Equal(t, "This is one.", got[0])
		assert.Equal(t, "This is two!", got[1])
		assert.Equal(t, "Is this three?", got[2])
		assert.Equal(t, "This is four.", got[3])
	})

	t.Run("keeps abbreviations together", func(t *testing.T) {
		got := SplitSentences("Providers cache prompts, e.g. Anthropic does this.")
		assert.Len(t, got, 1)
	})

	t.Run("keeps initials together", func(t *testing.T) {
		got := SplitSentences("The course by J. Smith covers caching.")
		assert.Len(t, got, 1)
	})

	t.Run("no split without following capital", func(t *testing.T) {
		got := SplitSentences("version 2.1 was released. it worked")
		assert.Len(t, got, 1)
	})

	t.Run("normalises whitespace", func(t *testing.T) {
		got := SplitSentences("  One   sentence.\n\nTwo   sentences here.  ")
		require.Len(t, got, 2)
		assert.Equal(t, "One sentence.", got[0])
		assert.Equal(t, "Two sentences here.", got[1])
	})

	t.Run("empty text", func(t *testing.T) {
		assert.Nil(t, SplitSentences("   \n\t  "))
	})
}

func TestChunkText(t *testing.T) {
	t.Run("empty text yields zero chunks", func(t *testing.T) {
		c := New()
		assert.Nil(t, c.ChunkText(""))
	})

	t.Run("short text yields one chunk without overlap", func(t *testing.T) {
		c := New(WithChunkSize(800), WithOverlap(100))
		got := c.ChunkText("A single short lesson. Nothing more to say.")
		require.Len(t, got, 1)
		assert.Equal(t, "A single short lesson. Nothing more to say.", got[0])
	})

	t.Run("adjacent chunks share trailing sentences", func(t *testing.T) {
		c := New(WithChunkSize(20), WithOverlap(12))
		got := c.ChunkText("Aa bb cc. Dd ee ff. Gg hh ii. Jj kk ll.")
		require.Len(t, got, 3)
		assert.Equal(t, "Aa bb cc. Dd ee ff.", got[0])
		assert.Equal(t, "Dd ee ff. Gg hh ii.", got[1])
		assert.Equal(t, "Gg hh ii. Jj kk ll.", got[2])
	})

	t.Run("never splits a sentence", func(t *testing.T) {
		c := New(WithChunkSize(40), WithOverlap(15))
		text := "Alpha beta gamma one. Delta epsilon two. Zeta eta theta three. Iota kappa four."
		sentences := SplitSentences(text)
		for _, chunk := range c.ChunkText(text) {
			for _, s := range sentences {
				if strings.Contains(chunk, s[:len(s)/2]) {
					// a chunk containing the head of a sentence must
					// contain the whole sentence
					assert.Contains(t, chunk, s)
				}
			}
		}
	})

	t.Run("every sentence lands in some chunk", func(t *testing.T) {
		c := New(WithChunkSize(30), WithOverlap(10))
		text := "First point made. Second point made. Third point made. Fourth point made."
		chunks := c.ChunkText(text)
		joined := strings.Join(chunks, " ")
		for _, s := range SplitSentences(text) {
			assert.Contains(t, joined, s)
		}
	})

	t.Run("chunk length bounded by size plus one sentence", func(t *testing.T) {
		c := New(WithChunkSize(50), WithOverlap(20))
		text := strings.Repeat("Some sentences are short. Others run rather longer than that. ", 10)
		longest := 0
		for _, s := range SplitSentences(text) {
			if len(s) > longest {
				longest = len(s)
			}
		}
		for _, chunk := range c.ChunkText(text) {
			assert.LessOrEqual(t, len(chunk), 50+longest+1)
		}
	})
}

func TestChunkLesson(t *testing.T) {
	text := "Caching reduces latency. It also reduces cost. Use it for long prompts."

	t.Run("first lesson gets short prefix", func(t *testing.T) {
		c := New()
		chunks := c.ChunkLesson(text, "Intro to Prompt Caching", 0, true, 0)
		require.Len(t, chunks, 1)
		assert.True(t, strings.HasPrefix(chunks[0].Content, "Lesson 0 content: "))
		assert.NotContains(t, chunks[0].Content, "Course Intro")
	})

	t.Run("later lessons get full prefix", func(t *testing.T) {
		c := New()
		chunks := c.ChunkLesson(text, "Intro to Prompt Caching", 2, false, 4)
		require.Len(t, chunks, 1)
		assert.True(t, strings.HasPrefix(
			chunks[0].Content, "Course Intro to Prompt Caching Lesson 2 content: "))
	})

	t.Run("only chunk zero is prefixed", func(t *testing.T) {
		c := New(WithChunkSize(30), WithOverlap(0))
		chunks := c.ChunkLesson(text, "X", 1, false, 0)
		require.Greater(t, len(chunks), 1)
		for _, chunk := range chunks[1:] {
			assert.NotContains(t, chunk.Content, "content:")
		}
	})

	t.Run("index continues from start", func(t *testing.T) {
		c := New(WithChunkSize(30), WithOverlap(0))
		chunks := c.ChunkLesson(text, "X", 1, true, 7)
		for i, chunk := range chunks {
			assert.Equal(t, 7+i, chunk.Index)
			require.NotNil(t, chunk.LessonNumber)
			assert.Equal(t, 1, *chunk.LessonNumber)
		}
	})

	t.Run("empty lesson text yields zero chunks", func(t *testing.T) {
		c := New()
		assert.Nil(t, c.ChunkLesson("", "X", 1, true, 0))
	})
}

func TestChunkCourseLevel(t *testing.T) {
	c := New()
	chunks := c.ChunkCourseLevel("Welcome to the course. Enjoy the ride.", "X", 3)
	require.Len(t, chunks, 1)
	assert.Nil(t, chunks[0].LessonNumber)
	assert.Equal(t, 3, chunks[0].Index)
	assert.NotContains(t, chunks[0].Content, "content:")
}
