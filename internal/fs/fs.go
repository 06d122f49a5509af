// Package fs implements the FileSystem host interface (§6) that the
// preprocessor's #include/#moj_import handling resolves paths through, and
// its two implementations: an OS-backed loader and an in-memory one.
//
// Both loaders generalize the teacher's LocalFilesystemLoader
// (template_loader.go/virtfs.go: baseDir, Abs-with-sandbox, Get) from
// "load a template by name, relative to a base directory or the includer's
// directory" to "load a GLSL include, relative to the includer's directory
// or an ordered list of include roots."
package fs

import "golang.org/x/text/encoding"

// FileSystem is the host collaborator the preprocessor resolves
// #include/#moj_import paths through (§6).
type FileSystem interface {
	// Canonicalize resolves path (which may be relative) to a canonical,
	// comparable form used for include-cycle detection.
	Canonicalize(path string) (string, error)
	// Exists reports whether path can be Read.
	Exists(path string) bool
	// Read loads path's contents, decoding with enc (nil means UTF-8).
	Read(path string, enc encoding.Encoding) (string, error)
}

// NotFoundError is returned by Read when path does not exist.
type NotFoundError struct{ Path string }

func (e *NotFoundError) Error() string { return "file not found: " + e.Path }
