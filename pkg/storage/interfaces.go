package storage

import (
	"context"
	"io"
)

// Storage is the object store used for event media files.
type Storage interface {
	Upload(ctx context.Context, key string, src io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}
