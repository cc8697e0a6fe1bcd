// Package storage holds the object-storage abstraction behind service
// catalog images.
package storage

import (
	"context"
	"time"
)

// FileStorage stores uploaded files and resolves them back by the public
// URL returned from UploadFile.
type FileStorage interface {
	// UploadFile stores data under a generated object name derived from
	// filename and returns the public URL.
	UploadFile(ctx context.Context, data []byte, filename string) (string, error)

	DeleteFile(ctx context.Context, fileURL string) error

	GetFile(ctx context.Context, fileURL string) ([]byte, error)

	// GetPresignedURL returns a temporary signed URL for private buckets.
	GetPresignedURL(ctx context.Context, fileURL string, expiry time.Duration) (string, error)
}
