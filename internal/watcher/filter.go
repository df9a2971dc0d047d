package watcher

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/toyz/bunner/internal/utils"
)

// EventType is the kind of change reported to callbacks
type EventType string

const (
	EventChange EventType = "change"
	EventRename EventType = "rename"
	EventError  EventType = "error"
)

// FileChangePayload is one filtered file system event. Filename is relative
// to the watched root and uses forward slashes.
type FileChangePayload struct {
	EventType EventType
	Filename  string
}

// ignoredSegments are directories whose contents never trigger a rebuild
var ignoredSegments = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	".bunner":      {},
	"dist":         {},
}

// Normalize converts an event path to a root relative, slash separated name
func Normalize(root, name string) string {
	if filepath.IsAbs(name) {
		if rel, err := filepath.Rel(root, name); err == nil {
			name = rel
		}
	}
	name = utils.NormalizePath(name)
	if name == "." {
		return ""
	}
	return strings.TrimPrefix(name, "./")
}

// IsIgnoredDir reports whether a directory name is never watched
func IsIgnoredDir(name string) bool {
	_, ignored := ignoredSegments[name]
	return ignored
}

// ShouldIgnore reports whether a normalized relative path is filtered out
func ShouldIgnore(rel string) bool {
	if rel == "" || rel == ".." || strings.HasPrefix(rel, "../") {
		return true
	}
	for _, segment := range strings.Split(rel, "/") {
		if IsIgnoredDir(segment) {
			return true
		}
	}
	return !strings.HasSuffix(rel, ".ts") || strings.HasSuffix(rel, ".d.ts")
}

// EventTypeOf maps an fsnotify operation to a payload event type. Content
// changes are "change", everything that alters the directory listing is "rename".
func EventTypeOf(op fsnotify.Op) EventType {
	switch {
	case op.Has(fsnotify.Create), op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return EventRename
	default:
		return EventChange
	}
}
