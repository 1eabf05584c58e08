// Package errors provides the classified error primitives used across makesite.
//
// A build fails for a small number of reasons and each one maps to a category:
//   - CategoryFileAccess: a source is missing or unreadable, or a destination is unwritable
//   - CategoryTemplateRead: a layout template could not be loaded
//   - CategoryConfig / CategoryValidation: bad configuration or command-line input
//   - CategoryInternal: anything else
//
// Example usage:
//
//	err := errors.FileAccessError("read content").
//		WithContext("path", path).
//		WithCause(originalErr).
//		Build()
package errors
