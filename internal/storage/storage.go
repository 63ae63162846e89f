// Package storage defines the public file store that holds uploaded task images.
package storage

import (
	"context"
	"io"
	"path"
)

// TasksNamespace is the namespace task images are written to.
const TasksNamespace = "tasks"

// FileStore is a namespaced blob store with public visibility.
//
// Paths passed to Exists and Delete are "namespace/filename" as returned by Path.
type FileStore interface {
	Put(ctx context.Context, namespace, filename string, r io.Reader, contentType string) error
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
}

// Path joins a namespace and a filename into a store path.
func Path(namespace, filename string) string {
	return path.Join(namespace, filename)
}
