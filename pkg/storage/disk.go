// Package storage is the blob store behind uploaded documents.
//
// Two drivers are available:
//   - "local": a directory on the local filesystem (default)
//   - "s3":    S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Blobs live in a flat namespace; a name is a single path element.
//
//	disk, err := storage.New(cfg.Storage)
//	err = disk.Put(ctx, "1700000000000report.pdf", file, size, "application/pdf")
//	url := disk.URL("1700000000000report.pdf")
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotExist is returned by Open for a blob that does not exist.
var ErrNotExist = errors.New("storage: blob does not exist")

// ErrInvalidName rejects names that are empty or would escape the namespace.
var ErrInvalidName = errors.New("storage: invalid blob name")

// Disk is the driver interface every blob store implements.
type Disk interface {
	// Driver names the implementation ("local", "s3").
	Driver() string

	// Put stores r under name. size may be -1 when unknown.
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error

	// Open streams the blob. The caller must close the reader.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	Exists(ctx context.Context, name string) (bool, error)

	// Delete removes the blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// URL is the public address of the blob.
	URL(name string) string
}

// ValidName reports whether name is usable as a blob name.
func ValidName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
