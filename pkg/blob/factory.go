package blob

import (
	"context"
	"fmt"

	"cropdoc/config"
)

// NewFromConfig picks the blob backend from config.
func NewFromConfig(ctx context.Context, cfg config.AppConfig) (Store, error) {
	switch cfg.BlobBackend {
	case "fs", "":
		return NewFileStore(cfg.UploadDir, cfg.PublicBaseURL)
	case "s3":
		return NewS3Store(ctx, cfg.S3Bucket, cfg.S3Prefix)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown blob backend: %s", cfg.BlobBackend)
	}
}
