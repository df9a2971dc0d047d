package analyzer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModuleDiscovery_NearestModule(t *testing.T) {
	root := filepath.FromSlash("/src/__module__.ts")
	feature := filepath.FromSlash("/src/a/__module__.ts")
	nested := filepath.FromSlash("/src/a/sub/f.ts")
	rootFile := filepath.FromSlash("/src/root.ts")
	outside := filepath.FromSlash("/other/x.ts")

	d := NewModuleDiscovery([]string{nested, rootFile, outside, root, feature}, "__module__.ts")
	modules := d.Discover()

	assert.Len(t, modules, 2)
	assert.Contains(t, modules[feature], nested)
	assert.NotContains(t, modules[root], nested)
	assert.Contains(t, modules[root], rootFile)
	assert.Contains(t, d.Orphans(), outside)

	assert.Equal(t, feature, d.OwnerOf(nested))
	assert.Equal(t, root, d.OwnerOf(root))
	assert.Equal(t, "", d.OwnerOf(outside))
}

func TestModuleDiscovery_SiblingPrefixIsNotAncestor(t *testing.T) {
	marker := filepath.FromSlash("/src/app/__module__.ts")
	sibling := filepath.FromSlash("/src/apple/x.ts")

	d := NewModuleDiscovery([]string{marker, sibling}, "__module__.ts")
	modules := d.Discover()

	assert.Empty(t, modules[marker])
	assert.Contains(t, d.Orphans(), sibling)
}

func TestModuleDiscovery_OrderIndependent(t *testing.T) {
	files := []string{
		filepath.FromSlash("/p/__module__.ts"),
		filepath.FromSlash("/p/b/__module__.ts"),
		filepath.FromSlash("/p/b/c/d.ts"),
		filepath.FromSlash("/p/e.ts"),
	}
	reversed := []string{files[3], files[2], files[1], files[0]}

	first := NewModuleDiscovery(files, "__module__.ts").Discover()
	second := NewModuleDiscovery(reversed, "__module__.ts").Discover()

	assert.Equal(t, first, second)
}

func TestModuleDiscovery_EmptyInput(t *testing.T) {
	d := NewModuleDiscovery(nil, "__module__.ts")

	assert.Empty(t, d.Discover())
	assert.Empty(t, d.Orphans())
}

func TestSortedFiles(t *testing.T) {
	set := map[string]struct{}{"/b.ts": {}, "/B.ts": {}, "/a.ts": {}}
	assert.Equal(t, []string{"/B.ts", "/a.ts", "/b.ts"}, SortedFiles(set))
}
