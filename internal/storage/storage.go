// Package storage keeps uploaded video files.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"piclips/internal/config"

	"github.com/google/uuid"
)

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Object is a stored file. Key identifies it to the driver; URL is what
// clients use to fetch it.
type Object struct {
	Key string
	URL string
}

type Storage interface {
	Save(ctx context.Context, upload Upload) (*Object, error)
	// Delete removes the object; deleting a missing object is not an error
	Delete(ctx context.Context, key string) error
}

// New returns the driver selected by cfg.Driver.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStorage(cfg.LocalDir, cfg.PublicPrefix)
	case "s3":
		return NewS3Storage(cfg.S3Bucket, cfg.S3Region)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// objectKey builds a unique key that keeps the upload's extension.
func objectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	return fmt.Sprintf("video-%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}
