package driving

import "context"

// IngestStats reports what an ingestion pass added.
type IngestStats struct {
	CoursesAdded int
	ChunksAdded  int
}

// CourseAnalytics summarises the ingested corpus.
type CourseAnalytics struct {
	TotalCourses int
	CourseTitles []string
}

// IngestService loads course documents into the vector store.
type IngestService interface {
	// AddCourseFile ingests a single course document. Re-ingesting an
	// already-present course title is a no-op skip.
	AddCourseFile(ctx context.Context, path string) (*IngestStats, error)

	// AddCourseFolder ingests every supported document in a folder.
	// Failures local to one file are contained; others continue.
	// When clearExisting is set, both collections are emptied first.
	AddCourseFolder(ctx context.Context, dir string, clearExisting bool) (*IngestStats, error)

	// Analytics reports course count and titles.
	Analytics(ctx context.Context) (*CourseAnalytics, error)
}
