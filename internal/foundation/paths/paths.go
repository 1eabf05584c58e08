// Package paths holds path containment checks shared by configuration validation
// and the watcher.
package paths

import (
	"path/filepath"
	"strings"
)

// Within reports whether path is dir or lies below it. Both are compared lexically
// after cleaning, so callers resolve them to absolute paths first.
func Within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// Overlap reports whether either path contains the other.
func Overlap(a, b string) bool {
	return Within(a, b) || Within(b, a)
}
