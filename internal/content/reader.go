package content

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	ferrors "git.home.luguber.info/inful/makesite/internal/foundation/errors"
)

// Read loads the file at path and derives its metadata.
func Read(path string) (*Item, error) {
	// #nosec G304 -- content paths come from the configured content directory.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.FileAccessError("read content").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, ferrors.FileAccessError("stat content").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	slug := SlugFromPath(path)
	modified := info.ModTime().Local()

	return &Item{
		Category:   CategoryFromPath(path),
		Slug:       slug,
		Title:      TitleFromSlug(slug),
		Content:    string(data),
		Date:       modified.Format(DateLayout),
		FullDate:   modified.Format(FullDateLayout),
		SourcePath: path,
	}, nil
}

// CategoryFromPath returns the name of the path's parent directory, or "" when the
// path has no directory component.
func CategoryFromPath(path string) string {
	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return ""
	}
	return filepath.Base(dir)
}

// SlugFromPath strips every extension from the base name: "a.draft.html" becomes "a".
func SlugFromPath(path string) string {
	name := filepath.Base(path)
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// TitleFromSlug turns "hello-world" into "Hello World".
func TitleFromSlug(slug string) string {
	// Casers keep state between calls, so one is made per title.
	return cases.Title(language.Und).String(strings.ReplaceAll(slug, "-", " "))
}
