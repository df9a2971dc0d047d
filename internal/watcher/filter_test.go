package watcher

import (
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "feature.ts", Normalize("/app/src", "feature.ts"))
	assert.Equal(t, "feature.ts", Normalize("/app/src", "/app/src/feature.ts"))
	assert.Equal(t, "users/users.service.ts", Normalize("/app/src", "/app/src/users/users.service.ts"))
	assert.Equal(t, "", Normalize("/app/src", "/app/src"))
}

func TestShouldIgnore(t *testing.T) {
	tests := []struct {
		rel    string
		ignore bool
	}{
		{"feature.ts", false},
		{"users/users.service.ts", false},
		{"distance.ts", false},
		{"types.d.ts", true},
		{"readme.md", true},
		{"component.tsx", true},
		{"node_modules/pkg/index.ts", true},
		{"nested/.git/hooks.ts", true},
		{".bunner/runtime.ts", true},
		{"dist/main.ts", true},
		{"../outside.ts", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			assert.Equal(t, tt.ignore, ShouldIgnore(tt.rel))
		})
	}
}

func TestEventTypeOf(t *testing.T) {
	assert.Equal(t, EventChange, EventTypeOf(fsnotify.Write))
	assert.Equal(t, EventChange, EventTypeOf(fsnotify.Chmod))
	assert.Equal(t, EventRename, EventTypeOf(fsnotify.Create))
	assert.Equal(t, EventRename, EventTypeOf(fsnotify.Remove))
	assert.Equal(t, EventRename, EventTypeOf(fsnotify.Rename))
	assert.Equal(t, EventRename, EventTypeOf(fsnotify.Create|fsnotify.Write))
}
