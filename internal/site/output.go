package site

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/makesite/internal/foundation/errors"
	"git.home.luguber.info/inful/makesite/internal/logfields"
)

// ResetOutput removes outputDir and recreates it as a copy of staticDir.
// A missing staticDir leaves an empty output directory.
func ResetOutput(staticDir, outputDir string) error {
	if err := os.RemoveAll(outputDir); err != nil {
		return ferrors.FileAccessError("remove output directory").
			WithCause(err).
			WithContext("path", outputDir).
			Build()
	}

	if _, err := os.Stat(staticDir); errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Static directory not found, starting from an empty output directory",
			logfields.Path(staticDir))
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return ferrors.FileAccessError("create output directory").
				WithCause(err).
				WithContext("path", outputDir).
				Build()
		}
		return nil
	}

	if err := CopyDir(staticDir, outputDir); err != nil {
		return ferrors.FileAccessError("copy static directory").
			WithCause(err).
			WithContext("path", staticDir).
			WithContext("dest", outputDir).
			Build()
	}
	return nil
}

// CopyDir recursively copies a directory tree, preserving file modes.
func CopyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := CopyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}

	return nil
}

// copyFile copies a single file from src to dst
func copyFile(src, dst string) error {
	// #nosec G304 -- src is inside the configured static directory.
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	// #nosec G304 -- dst is inside the configured output directory.
	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = dstFile.Close()
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode())
}
