// Package sqlite provides a persistent vector store backed by SQLite.
// Embeddings are stored as little-endian float32 blobs and scored in
// memory with cosine distance; metadata filters are pushed into SQL.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS courses (
	title       TEXT PRIMARY KEY,
	link        TEXT NOT NULL DEFAULT '',
	instructor  TEXT NOT NULL DEFAULT '',
	lessons     TEXT NOT NULL DEFAULT '[]',
	embedding   BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS chunks (
	id            TEXT PRIMARY KEY,
	course_title  TEXT NOT NULL REFERENCES courses(title) ON DELETE CASCADE,
	lesson_number INTEGER,
	chunk_index   INTEGER NOT NULL,
	content       TEXT NOT NULL,
	embedding     BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chunks_course ON chunks(course_title);
`

// Store is a SQLite-backed implementation of driven.VectorStore.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates or opens the vector database under dataDir.
// If dataDir is empty, defaults to ~/.lectern/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lectern", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "vectors.db")

	// WAL mode for read-mostly query traffic alongside ingestion writes
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertCatalog stores a course entry keyed by title.
func (s *Store) UpsertCatalog(ctx context.Context, entry driven.CatalogEntry, embedding []float32) error {
	lessons, err := json.Marshal(entry.Lessons)
	if err != nil {
		return fmt.Errorf("marshal lessons: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO courses (title, link, instructor, lessons, embedding)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			link = excluded.link,
			instructor = excluded.instructor,
			lessons = excluded.lessons,
			embedding = excluded.embedding`,
		entry.Title, entry.Link, entry.Instructor, string(lessons), encodeVector(embedding))
	if err != nil {
		return fmt.Errorf("upsert course %q: %w", entry.Title, err)
	}
	return nil
}

// UpsertContent stores chunks keyed by their course-scoped ids.
func (s *Store) UpsertContent(ctx context.Context, chunks []domain.CourseChunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunks and embeddings length mismatch: %d != %d", len(chunks), len(embeddings))
	}
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, course_title, lesson_number, chunk_index, content, embedding)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			embedding = excluded.embedding`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, chunk := range chunks {
		var lesson any
		if chunk.LessonNumber != nil {
			lesson = *chunk.LessonNumber
		}
		if _, err := stmt.ExecContext(ctx,
			chunk.ID(), chunk.CourseTitle, lesson, chunk.Index,
			chunk.Content, encodeVector(embeddings[i])); err != nil {
			return fmt.Errorf("insert chunk %s: %w", chunk.ID(), err)
		}
	}

	return tx.Commit()
}

// QueryCatalog returns the k nearest catalog entries.
func (s *Store) QueryCatalog(ctx context.Context, embedding []float32, k int) ([]driven.CatalogHit, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT title, link, instructor, lessons, embedding FROM courses`)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	var hits []driven.CatalogHit
	for rows.Next() {
		var entry driven.CatalogEntry
		var lessons string
		var blob []byte
		if err := rows.Scan(&entry.Title, &entry.Link, &entry.Instructor, &lessons, &blob); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		if err := json.Unmarshal([]byte(lessons), &entry.Lessons); err != nil {
			return nil, fmt.Errorf("decode lessons for %q: %w", entry.Title, err)
		}
		hits = append(hits, driven.CatalogHit{
			Entry:    entry,
			Distance: cosineDistance(embedding, decodeVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// QueryContent returns the k nearest content chunks matching the filter.
func (s *Store) QueryContent(
	ctx context.Context, embedding []float32, k int, filter domain.SearchFilter,
) ([]driven.ContentHit, error) {
	query := `SELECT content, course_title, lesson_number, chunk_index, embedding FROM chunks`
	var conds []string
	var args []any
	if filter.CourseTitle != "" {
		conds = append(conds, "course_title = ?")
		args = append(args, filter.CourseTitle)
	}
	if filter.LessonNumber != nil {
		conds = append(conds, "lesson_number = ?")
		args = append(args, *filter.LessonNumber)
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query chunks: %w", err)
	}
	defer rows.Close()

	var hits []driven.ContentHit
	for rows.Next() {
		var content string
		var meta domain.ChunkMetadata
		var lesson sql.NullInt64
		var blob []byte
		if err := rows.Scan(&content, &meta.CourseTitle, &lesson, &meta.ChunkIndex, &blob); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		if lesson.Valid {
			n := int(lesson.Int64)
			meta.LessonNumber = &n
		}
		hits = append(hits, driven.ContentHit{
			Content:  content,
			Metadata: meta,
			Distance: cosineDistance(embedding, decodeVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chunks: %w", err)
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// GetCatalogEntry retrieves a catalog entry by exact title.
func (s *Store) GetCatalogEntry(ctx context.Context, title string) (*driven.CatalogEntry, error) {
	var entry driven.CatalogEntry
	var lessons string
	err := s.db.QueryRowContext(ctx,
		`SELECT title, link, instructor, lessons FROM courses WHERE title = ?`, title).
		Scan(&entry.Title, &entry.Link, &entry.Instructor, &lessons)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get course %q: %w", title, err)
	}
	if err := json.Unmarshal([]byte(lessons), &entry.Lessons); err != nil {
		return nil, fmt.Errorf("decode lessons for %q: %w", title, err)
	}
	return &entry, nil
}

// ListCourseTitles returns all catalog titles.
func (s *Store) ListCourseTitles(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT title FROM courses ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// CountContent reports the number of stored chunks.
func (s *Store) CountContent(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return count, nil
}

// Clear removes all entries from both collections.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM chunks`); err != nil {
		return fmt.Errorf("clear chunks: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM courses`); err != nil {
		return fmt.Errorf("clear courses: %w", err)
	}
	return nil
}

// encodeVector packs a float32 slice as a little-endian blob.
func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// decodeVector unpacks a little-endian blob into a float32 slice.
func decodeVector(buf []byte) []float32 {
	v := make([]float32, len(buf)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return v
}

// cosineDistance returns 1 - cosine similarity, so smaller is closer.
func cosineDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
