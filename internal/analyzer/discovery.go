package analyzer

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/bunner/internal/utils"
)

// ModuleDiscovery assigns files to the nearest enclosing module directory.
// A module directory is one that contains a marker file.
type ModuleDiscovery struct {
	filePaths      []string
	moduleFileName string
	moduleMap      map[string]map[string]struct{}
	orphans        map[string]struct{}
}

// NewModuleDiscovery creates a discovery over filePaths using the given marker name
func NewModuleDiscovery(filePaths []string, moduleFileName string) *ModuleDiscovery {
	return &ModuleDiscovery{
		filePaths:      filePaths,
		moduleFileName: moduleFileName,
		moduleMap:      make(map[string]map[string]struct{}),
		orphans:        make(map[string]struct{}),
	}
}

// Discover maps every marker path to the set of files it owns
func (d *ModuleDiscovery) Discover() map[string]map[string]struct{} {
	d.moduleMap = make(map[string]map[string]struct{})
	d.orphans = make(map[string]struct{})

	var markers, files []string
	for _, p := range d.filePaths {
		if filepath.Base(p) == d.moduleFileName {
			markers = append(markers, p)
		} else {
			files = append(files, p)
		}
	}

	// deepest first, ties by code point
	sort.SliceStable(markers, func(i, j int) bool {
		if len(markers[i]) != len(markers[j]) {
			return len(markers[i]) > len(markers[j])
		}
		return utils.CompareCodePoint(markers[i], markers[j]) < 0
	})
	sort.SliceStable(files, func(i, j int) bool {
		return utils.CompareCodePoint(files[i], files[j]) < 0
	})

	for _, m := range markers {
		d.moduleMap[m] = make(map[string]struct{})
	}

	for _, file := range files {
		fileDir := filepath.Dir(file)
		assigned := false
		for _, marker := range markers {
			modDir := filepath.Dir(marker)
			if fileDir == modDir || strings.HasPrefix(fileDir, modDir+string(filepath.Separator)) {
				d.moduleMap[marker][file] = struct{}{}
				assigned = true
				break
			}
		}
		if !assigned {
			d.orphans[file] = struct{}{}
		}
	}

	return d.moduleMap
}

// Orphans returns files no module directory encloses
func (d *ModuleDiscovery) Orphans() map[string]struct{} {
	return d.orphans
}

// OwnerOf returns the marker path owning file, or "" for orphans and unknown files
func (d *ModuleDiscovery) OwnerOf(file string) string {
	if _, ok := d.moduleMap[file]; ok {
		return file
	}
	for marker, owned := range d.moduleMap {
		if _, ok := owned[file]; ok {
			return marker
		}
	}
	return ""
}

// SortedFiles returns a set's members in code-point order
func SortedFiles(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		return utils.CompareCodePoint(out[i], out[j]) < 0
	})
	return out
}
