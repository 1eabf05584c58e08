package content

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Glob returns the files matching a shell-style pattern, sorted by path.
//
// `*` and `?` never cross a path separator, so `content/*/*.html` matches exactly one
// directory level. Character classes accept `!` for negation (`[!_]*.html`). Entries
// whose names start with a dot are skipped unless the pattern segment itself starts
// with a dot. A pattern whose fixed prefix does not exist matches nothing, and
// directories that cannot be read are skipped.
func Glob(pattern string) ([]string, error) {
	pattern = path.Clean(filepath.ToSlash(pattern))
	matcher, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, err
	}

	segments := strings.Split(pattern, "/")
	rootPath := filepath.FromSlash(staticPrefix(segments))

	var matches []string
	err = filepath.WalkDir(rootPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p != rootPath {
				// Unreadable entries below the root match nothing.
				return skip(d)
			}
			if errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if p == rootPath {
			return nil
		}

		rel := filepath.ToSlash(p)
		depth := len(strings.Split(rel, "/"))
		if depth > len(segments) {
			return skip(d)
		}
		if strings.HasPrefix(d.Name(), ".") && !strings.HasPrefix(segments[depth-1], ".") {
			return skip(d)
		}
		if d.IsDir() {
			if depth == len(segments) {
				return fs.SkipDir
			}
			return nil
		}
		if depth == len(segments) && matcher.Match(rel) {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(matches)
	return matches, nil
}

func skip(d fs.DirEntry) error {
	if d != nil && d.IsDir() {
		return fs.SkipDir
	}
	return nil
}

// staticPrefix joins the leading segments that contain no pattern syntax. The last
// segment is never part of the prefix.
func staticPrefix(segments []string) string {
	n := 0
	for n < len(segments)-1 && !strings.ContainsAny(segments[n], `*?[{\`) {
		n++
	}
	switch {
	case n == 0:
		return "."
	case n == 1 && segments[0] == "":
		return "/"
	default:
		return strings.Join(segments[:n], "/")
	}
}
