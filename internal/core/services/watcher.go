package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lectern-labs/lectern-cli/internal/logger"
	"github.com/lectern-labs/lectern-cli/internal/parsers"
)

// debounceWindow coalesces the burst of write events an editor or
// download produces for a single file.
const debounceWindow = 500 * time.Millisecond

// FolderWatcher ingests course documents as they appear in a folder.
// Ingestion is idempotent, so re-writes of an already-known course are
// harmless no-ops.
type FolderWatcher struct {
	service  *RAGService
	registry *parsers.Registry
}

// NewFolderWatcher creates a watcher over the given service.
func NewFolderWatcher(service *RAGService, registry *parsers.Registry) *FolderWatcher {
	return &FolderWatcher{service: service, registry: registry}
}

// Watch blocks until ctx is cancelled, ingesting supported files that
// are created or modified under dir.
func (w *FolderWatcher) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Info("watching %s for course documents", dir)

	var mu sync.Mutex
	pending := make(map[string]*time.Timer)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !w.registry.Supported(event.Name) {
				continue
			}

			path := event.Name
			mu.Lock()
			if timer, exists := pending[path]; exists {
				timer.Stop()
			}
			pending[path] = time.AfterFunc(debounceWindow, func() {
				mu.Lock()
				delete(pending, path)
				mu.Unlock()

				if _, err := w.service.AddCourseFile(ctx, path); err != nil {
					logger.Warn("watch ingest %s: %v", path, err)
				}
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}
