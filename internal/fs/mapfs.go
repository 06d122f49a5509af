package fs

import (
	"path"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"gopkg.in/yaml.v2"
)

// MapFileSystem is the "prebuilt" FileSystem variant (§6): an in-memory
// map of path -> content, generalizing the teacher's template-set
// string-registration used by tests (template_sets.go) into a
// FileSystem implementation suitable for reproducible include-tree tests.
type MapFileSystem struct {
	files        map[string]string
	includeRoots []string
}

// NewMapFileSystem builds a MapFileSystem over the given path -> content
// entries.
func NewMapFileSystem(files map[string]string, includeRoots ...string) *MapFileSystem {
	cp := make(map[string]string, len(files))
	for k, v := range files {
		cp[path.Clean(k)] = v
	}
	return &MapFileSystem{files: cp, includeRoots: includeRoots}
}

// Canonicalize normalizes path (map keys are always slash-separated and
// Clean'd).
func (m *MapFileSystem) Canonicalize(p string) (string, error) {
	return path.Clean(p), nil
}

// Exists reports whether p is a registered entry.
func (m *MapFileSystem) Exists(p string) bool {
	_, ok := m.files[path.Clean(p)]
	return ok
}

// Read returns the registered content for p. The enc parameter is ignored:
// map entries are always already-decoded Go strings.
func (m *MapFileSystem) Read(p string, _ encoding.Encoding) (string, error) {
	content, ok := m.files[path.Clean(p)]
	if !ok {
		return "", &NotFoundError{Path: p}
	}
	return content, nil
}

// Resolve mirrors OSFileSystem.Resolve over the virtual tree.
func (m *MapFileSystem) Resolve(relativeTo, name string) (string, bool) {
	if strings.HasPrefix(name, "/") {
		return path.Clean(name), m.Exists(name)
	}

	base := "."
	if relativeTo != "" {
		base = path.Dir(relativeTo)
	}
	candidate := path.Join(base, name)
	if m.Exists(candidate) {
		return candidate, true
	}
	for _, root := range m.includeRoots {
		candidate = path.Join(root, name)
		if m.Exists(candidate) {
			return candidate, true
		}
	}
	return path.Join(base, name), false
}

// Paths returns the registered paths in sorted order, mainly for tests.
func (m *MapFileSystem) Paths() []string {
	out := make([]string, 0, len(m.files))
	for k := range m.files {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// LoadManifest seeds a MapFileSystem from a YAML fixture manifest (a flat
// `path: content` mapping), letting integration tests exercise multi-file
// #include trees without touching the OS filesystem.
func LoadManifest(yamlDoc []byte, includeRoots ...string) (*MapFileSystem, error) {
	var entries map[string]string
	if err := yaml.Unmarshal(yamlDoc, &entries); err != nil {
		return nil, err
	}
	return NewMapFileSystem(entries, includeRoots...), nil
}
