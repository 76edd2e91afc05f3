package domain

import "fmt"

// Lesson is a single lesson within a course.
type Lesson struct {
	// Number is the lesson number, unique within a course.
	Number int

	// Title is the lesson title.
	Title string

	// Link is the optional lesson URL.
	Link string
}

// Course represents one ingested course document.
// Identity is the title (case-sensitive exact string); a course is
// immutable after ingestion.
type Course struct {
	// Title is the unique course identifier.
	Title string

	// Link is the optional course URL.
	Link string

	// Instructor is the optional instructor name.
	Instructor string

	// Lessons is the ordered lesson sequence.
	Lessons []Lesson
}

// FindLesson returns the lesson with the given number, or nil.
func (c *Course) FindLesson(number int) *Lesson {
	for i := range c.Lessons {
		if c.Lessons[i].Number == number {
			return &c.Lessons[i]
		}
	}
	return nil
}

// CourseChunk is a bounded, context-prefixed span of lesson text stored
// as one retrievable unit in the content collection.
type CourseChunk struct {
	// Content is the context-enriched chunk text.
	Content string

	// CourseTitle back-references the owning course.
	CourseTitle string

	// LessonNumber is nil for course-level content outside any lesson.
	LessonNumber *int

	// Index is the 0-based position in the course-wide chunk sequence.
	// The counter continues across lessons, it is not reset per lesson.
	Index int
}

// ID returns the chunk's globally unique identifier within a course.
func (c CourseChunk) ID() string {
	return fmt.Sprintf("%s_%d", c.CourseTitle, c.Index)
}

// Metadata returns the chunk's vector-index metadata.
func (c CourseChunk) Metadata() ChunkMetadata {
	return ChunkMetadata{
		CourseTitle:  c.CourseTitle,
		LessonNumber: c.LessonNumber,
		ChunkIndex:   c.Index,
	}
}
