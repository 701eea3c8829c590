// Package files provides the file-handling utilities shared by corpus
// processing jobs: file lists, tab-separated key-to-file maps, transparently
// compressed readers and writers, and safe write/backup primitives.
package files

import (
	"path/filepath"
	"strings"
)

// SwapExtension replaces the extension of path with newExtension. The
// extension is supplied without a leading dot.
func SwapExtension(path, newExtension string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + newExtension
}

// AddExtension appends an extension to path. The extension is supplied
// without a leading dot.
func AddExtension(path, extension string) string {
	return path + "." + extension
}
