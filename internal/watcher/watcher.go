// Package watcher provides debounced filesystem watching for rebuild-on-change.
//
// It wraps fsnotify with filters (which paths matter) and a debouncer (rapid
// save bursts from editors collapse into one rebuild). The watch command
// points it at a project's src/ and include/ trees.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeEvent represents a file change event.
type ChangeEvent struct {
	Type EventType
	Path string
}

// EventType represents the type of file change.
type EventType int

const (
	EventTypeCreated EventType = iota
	EventTypeModified
	EventTypeDeleted
	EventTypeRenamed
)

// String returns the string representation of the EventType.
func (e EventType) String() string {
	switch e {
	case EventTypeCreated:
		return "created"
	case EventTypeModified:
		return "modified"
	case EventTypeDeleted:
		return "deleted"
	case EventTypeRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// FileFilter determines if a path should trigger a rebuild.
type FileFilter func(path string) bool

// ChangeHandler handles a debounced batch of file change events.
type ChangeHandler func(events []ChangeEvent)

// CSourceFilter accepts C sources and headers.
func CSourceFilter(path string) bool {
	switch filepath.Ext(path) {
	case ".c", ".h":
		return true
	default:
		return false
	}
}

// IgnoreDirsFilter rejects paths containing any of the given directory names.
func IgnoreDirsFilter(names ...string) FileFilter {
	return func(path string) bool {
		for _, part := range strings.Split(filepath.ToSlash(path), "/") {
			for _, name := range names {
				if part == name {
					return false
				}
			}
		}
		return true
	}
}

// FileWatcher watches directory trees and delivers debounced change batches.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	filters  []FileFilter
	handlers []ChangeHandler
	mutex    sync.RWMutex

	pending []ChangeEvent
	timer   *time.Timer
	flushMu sync.Mutex
}

// NewFileWatcher creates a file watcher with the given debounce window.
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		watcher:  w,
		debounce: debounce,
	}, nil
}

// AddFilter adds a file filter. All filters must accept a path for it to be
// delivered.
func (fw *FileWatcher) AddFilter(filter FileFilter) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	fw.filters = append(fw.filters, filter)
}

// AddHandler adds a change handler.
func (fw *FileWatcher) AddHandler(handler ChangeHandler) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	fw.handlers = append(fw.handlers, handler)
}

// AddRecursive watches root and every directory beneath it.
func (fw *FileWatcher) AddRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fw.watcher.Add(path)
		}
		return nil
	})
}

// Start begins watching. It returns immediately; events flow until the
// context is cancelled or Stop is called.
func (fw *FileWatcher) Start(ctx context.Context) {
	go fw.watchLoop(ctx)
}

// Stop stops the watcher and releases its resources.
func (fw *FileWatcher) Stop() error {
	fw.flushMu.Lock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.flushMu.Unlock()

	return fw.watcher.Close()
}

func (fw *FileWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)
		case _, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; keep watching.
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	fw.mutex.RLock()
	filters := fw.filters
	fw.mutex.RUnlock()

	for _, filter := range filters {
		if !filter(event.Name) {
			return
		}
	}

	var eventType EventType
	switch {
	case event.Op.Has(fsnotify.Create):
		eventType = EventTypeCreated
	case event.Op.Has(fsnotify.Write):
		eventType = EventTypeModified
	case event.Op.Has(fsnotify.Remove):
		eventType = EventTypeDeleted
	case event.Op.Has(fsnotify.Rename):
		eventType = EventTypeRenamed
	default:
		eventType = EventTypeModified
	}

	fw.enqueue(ChangeEvent{Type: eventType, Path: event.Name})

	// New directories need watches of their own.
	if eventType == EventTypeCreated {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = fw.AddRecursive(event.Name)
		}
	}
}

// enqueue buffers an event and (re)arms the debounce timer. The batch is
// flushed to handlers once the tree has been quiet for the debounce window.
func (fw *FileWatcher) enqueue(event ChangeEvent) {
	fw.flushMu.Lock()
	defer fw.flushMu.Unlock()

	fw.pending = append(fw.pending, event)

	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounce, fw.flush)
}

func (fw *FileWatcher) flush() {
	fw.flushMu.Lock()
	batch := fw.pending
	fw.pending = nil
	fw.flushMu.Unlock()

	if len(batch) == 0 {
		return
	}

	fw.mutex.RLock()
	handlers := fw.handlers
	fw.mutex.RUnlock()

	for _, handler := range handlers {
		handler(batch)
	}
}
