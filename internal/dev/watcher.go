package dev

import (
	"context"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// ChangeType represents the type of file change.
type ChangeType int

const (
	ChangeAsset ChangeType = iota
	ChangeCSS
	ChangeHTML
	ChangeWasm
)

func (t ChangeType) String() string {
	switch t {
	case ChangeCSS:
		return "css"
	case ChangeHTML:
		return "html"
	case ChangeWasm:
		return "wasm"
	default:
		return "asset"
	}
}

// Change represents a detected file change.
type Change struct {
	Path    string
	Type    ChangeType
	Removed bool
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Paths are the files and directories to watch.
	Paths []string

	// Ignore patterns to skip: base names, globs, or slash-separated
	// segment sequences.
	Ignore []string

	// Interval is the polling period.
	Interval time.Duration

	Logger *slog.Logger
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	".git",
	"node_modules",
	"*.tmp",
	"*.swp",
	"*~",
	".DS_Store",
}

// Watcher polls the watched paths and reports modified, added and removed
// files.
type Watcher struct {
	config   WatcherConfig
	logger   *slog.Logger
	mu       sync.Mutex
	onChange func([]Change)
	running  bool
	stopCh   chan struct{}
	known    map[string]time.Time
}

// NewWatcher creates a new file watcher.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Interval <= 0 {
		config.Interval = 100 * time.Millisecond
	}
	if config.Ignore == nil {
		config.Ignore = DefaultIgnore
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		config: config,
		logger: logger,
		known:  make(map[string]time.Time),
	}
}

// OnChange sets the callback receiving each poll's changes, sorted by path.
func (w *Watcher) OnChange(fn func([]Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start scans the watched paths once as a baseline and then polls until
// ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.known = w.scan()
	w.mu.Unlock()

	w.logger.Debug("watching files", "paths", w.config.Paths, "files", len(w.known))

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			w.Poll()
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Poll compares the file system against the last scan and reports the
// differences. It returns the reported changes.
func (w *Watcher) Poll() []Change {
	current := w.scan()

	w.mu.Lock()
	var changes []Change
	for p, mod := range current {
		if last, ok := w.known[p]; !ok || mod.After(last) {
			changes = append(changes, Change{Path: p, Type: classifyChange(p)})
		}
	}
	for p := range w.known {
		if _, ok := current[p]; !ok {
			changes = append(changes, Change{Path: p, Type: classifyChange(p), Removed: true})
		}
	}
	w.known = current
	callback := w.onChange
	w.mu.Unlock()

	if len(changes) == 0 {
		return nil
	}
	slices.SortFunc(changes, func(a, b Change) int { return strings.Compare(a.Path, b.Path) })
	if callback != nil {
		callback(changes)
	}
	return changes
}

// scan returns the modification time of every watched file.
func (w *Watcher) scan() map[string]time.Time {
	out := make(map[string]time.Time)
	for _, root := range w.config.Paths {
		_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if w.shouldIgnore(p) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			out[p] = info.ModTime()
			return nil
		})
	}
	return out
}

// shouldIgnore checks if a path should be ignored.
func (w *Watcher) shouldIgnore(fullPath string) bool {
	name := filepath.Base(fullPath)
	normalized := filepath.ToSlash(fullPath)

	for _, pattern := range w.config.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if name == pattern {
			return true
		}

		if strings.ContainsAny(pattern, "*?[") {
			target := name
			if strings.Contains(pattern, "/") {
				target = normalized
			}
			if ok, _ := path.Match(pattern, target); ok {
				return true
			}
			continue
		}
		if containsSegments(normalized, pattern) {
			return true
		}
	}
	return false
}

// containsSegments reports whether the segments of pattern appear
// consecutively in p.
func containsSegments(p, pattern string) bool {
	have := splitSegments(p)
	want := splitSegments(pattern)
	if len(want) == 0 || len(want) > len(have) {
		return false
	}
	for i := 0; i+len(want) <= len(have); i++ {
		if slices.Equal(have[i:i+len(want)], want) {
			return true
		}
	}
	return false
}

func splitSegments(p string) []string {
	return slices.DeleteFunc(strings.Split(p, "/"), func(s string) bool {
		return s == "" || s == "."
	})
}

// classifyChange determines the type of change based on file extension.
func classifyChange(p string) ChangeType {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".wasm":
		return ChangeWasm
	case ".css":
		return ChangeCSS
	case ".html", ".htm":
		return ChangeHTML
	default:
		return ChangeAsset
	}
}
