package parsers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
)

// Parser turns one raw course document into a Course and its chunks.
type Parser interface {
	// Extensions returns the file extensions this parser handles,
	// lowercase with leading dot.
	Extensions() []string

	// Parse converts raw document text into in-memory objects.
	// Persistence is the caller's responsibility.
	Parse(raw string) (*domain.Course, []domain.CourseChunk, error)
}

// Registry selects a parser by file extension.
type Registry struct {
	byExt map[string]Parser
}

// NewRegistry builds a registry from the given parsers.
func NewRegistry(list ...Parser) *Registry {
	r := &Registry{byExt: make(map[string]Parser)}
	for _, p := range list {
		for _, ext := range p.Extensions() {
			r.byExt[strings.ToLower(ext)] = p
		}
	}
	return r
}

// ForFile returns the parser for a file's extension.
func (r *Registry) ForFile(path string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	p, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, ext)
	}
	return p, nil
}

// Supported reports whether a file's extension has a parser.
func (r *Registry) Supported(path string) bool {
	_, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return ok
}
