// Package storage keeps report evidence images in S3 or on local disk.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/YusovID/fraud-registry/internal/config"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

type ImageStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// New builds the storage backend selected in cfg.
func New(ctx context.Context, cfg config.Storage) (ImageStorage, error) {
	switch cfg.Mode {
	case config.StorageS3:
		client, err := NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}

		return NewS3Storage(client, cfg.S3), nil
	case config.StorageLocal:
		return NewLocalStorage(cfg.LocalDir, cfg.PublicBaseURL)
	default:
		return nil, fmt.Errorf("internal.storage.New: unknown storage mode %q", cfg.Mode)
	}
}

// DetectImage sniffs data and returns its MIME type and canonical file
// extension. ok is false for anything that is not an image.
func DetectImage(data []byte) (mimeType, ext string, ok bool) {
	mt := mimetype.Detect(data)

	for m := mt; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return mt.String(), mt.Extension(), true
		}
	}

	return mt.String(), "", false
}

// NewKey returns a unique object name such as "1712345678901234567-<uuid>.png".
func NewKey(ext string) string {
	if ext == "" {
		ext = ".jpg"
	}

	return fmt.Sprintf("%d-%s%s", time.Now().UTC().UnixNano(), uuid.NewString(), strings.ToLower(ext))
}
