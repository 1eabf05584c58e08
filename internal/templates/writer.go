package templates

import (
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/makesite/internal/foundation/errors"
)

// WriteOutput writes body to path, creating missing parent directories.
// An existing file is overwritten.
func WriteOutput(path, body string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ferrors.FileAccessError("create output directory").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	// #nosec G306 -- generated site files are meant to be world readable.
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return ferrors.FileAccessError("write output").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
