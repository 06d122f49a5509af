package fs

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
)

// OSFileSystem reads includes from the host filesystem, generalizing the
// teacher's LocalFilesystemLoader (template_loader.go): an optional base
// directory that relative paths (and angle-bracket include-root search)
// resolve against.
type OSFileSystem struct {
	baseDir      string
	includeRoots []string
}

// NewOSFileSystem builds an OSFileSystem rooted at baseDir. Resolve uses
// baseDir only when the includer's path is empty; an empty baseDir means
// the working directory.
func NewOSFileSystem(baseDir string, includeRoots ...string) *OSFileSystem {
	return &OSFileSystem{baseDir: baseDir, includeRoots: includeRoots}
}

// Canonicalize returns the absolute, cleaned form of path.
func (fs *OSFileSystem) Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "canonicalizing %q", path)
	}
	return filepath.Clean(abs), nil
}

// Exists reports whether path exists and is not a directory; readability
// is not checked.
func (fs *OSFileSystem) Exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// Read loads path's contents. If enc is non-nil, bytes are decoded through
// it; otherwise the file is assumed UTF-8.
func (fs *OSFileSystem) Read(path string, enc encoding.Encoding) (string, error) {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Path: path}
		}
		return "", errors.Wrapf(err, "reading %q", path)
	}
	if enc == nil {
		return string(buf), nil
	}
	decoded, err := enc.NewDecoder().Bytes(buf)
	if err != nil {
		return "", errors.Wrapf(err, "decoding %q", path)
	}
	return string(decoded), nil
}

// Resolve finds name relative to relativeTo's directory (if it is
// absolute, it is returned unchanged); if the result doesn't exist and
// name isn't absolute, the configured include roots are searched in
// order, matching §4.4.7's "angle-bracket paths search the host-provided
// include roots in order."
func (fs *OSFileSystem) Resolve(relativeTo, name string) (string, bool) {
	if filepath.IsAbs(name) {
		return name, fs.Exists(name)
	}

	base := fs.baseDir
	if relativeTo != "" {
		base = filepath.Dir(relativeTo)
	}
	candidate := filepath.Join(base, name)
	if fs.Exists(candidate) {
		return candidate, true
	}

	for _, root := range fs.includeRoots {
		candidate = filepath.Join(root, name)
		if fs.Exists(candidate) {
			return candidate, true
		}
	}

	return filepath.Join(base, name), false
}
