package domain

import "fmt"

// ChunkMetadata is the metadata stored alongside each content vector.
type ChunkMetadata struct {
	// CourseTitle references a course present in the catalog collection.
	CourseTitle string

	// LessonNumber is nil for course-level chunks.
	LessonNumber *int

	// ChunkIndex is the chunk's position in the course-wide sequence.
	ChunkIndex int
}

// SearchFilter constrains a content-collection query.
// The zero value matches everything (global search).
type SearchFilter struct {
	// CourseTitle, when non-empty, restricts results to one course.
	CourseTitle string

	// LessonNumber, when non-nil, restricts results to one lesson.
	LessonNumber *int
}

// NewSearchFilter builds the metadata predicate for a content search:
// course only, lesson only, both conjoined, or no filter at all.
func NewSearchFilter(courseTitle string, lessonNumber *int) SearchFilter {
	return SearchFilter{CourseTitle: courseTitle, LessonNumber: lessonNumber}
}

// IsZero reports whether the filter matches everything.
func (f SearchFilter) IsZero() bool {
	return f.CourseTitle == "" && f.LessonNumber == nil
}

// Matches reports whether chunk metadata satisfies the filter.
func (f SearchFilter) Matches(meta ChunkMetadata) bool {
	if f.CourseTitle != "" && meta.CourseTitle != f.CourseTitle {
		return false
	}
	if f.LessonNumber != nil {
		if meta.LessonNumber == nil || *meta.LessonNumber != *f.LessonNumber {
			return false
		}
	}
	return true
}

// SearchResults is the outcome of one content search: parallel slices of
// document text, metadata, and ascending distance scores, or an error
// message. An empty result set is a valid state distinct from an error.
type SearchResults struct {
	Documents []string
	Metadata  []ChunkMetadata
	Distances []float64

	// Err carries a human-readable failure description. Errors are
	// surfaced as text so the model can react to a failed lookup.
	Err string
}

// FailedSearch builds an error-state result set.
func FailedSearch(format string, args ...any) SearchResults {
	return SearchResults{Err: fmt.Sprintf(format, args...)}
}

// IsEmpty reports whether the search matched nothing (and did not fail).
func (r SearchResults) IsEmpty() bool {
	return r.Err == "" && len(r.Documents) == 0
}

// Source identifies where a piece of retrieved content came from,
// rendered for end-user display.
type Source struct {
	// Text is the rendered label, "{course} - Lesson {n}" or the course
	// title alone for course-level content.
	Text string

	// Link is the lesson URL when known.
	Link string
}
