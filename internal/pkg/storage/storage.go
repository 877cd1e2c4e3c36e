package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidPath  = errors.New("invalid file path")
	ErrFileNotFound = errors.New("file not found")
)

type FileStorage interface {
	// Put stores the content under key and returns the normalized key.
	Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error)

	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Remove deletes key. Missing keys are not an error.
	Remove(ctx context.Context, key string) error

	// URL returns the public address of key.
	URL(key string) string
}
