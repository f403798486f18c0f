// Package blob stores uploaded files such as violation photos behind a
// driver-independent interface.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"rentalog/internal/config"
)

// Driver identifies a blob storage backend.
type Driver string

const (
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
	DriverMemory     Driver = "memory"
)

// PutOptions configures a blob write.
type PutOptions struct {
	ContentType string
}

// Info describes a stored blob.
type Info struct {
	Key         string `json:"key"`
	Size        int64  `json:"size_bytes"`
	ContentType string `json:"content_type,omitempty"`
	URL         string `json:"url"`
}

// Store is implemented by every backend.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// URL returns the public URL a client uses to fetch key.
	URL(key string) string
	Driver() Driver
}

// ErrInvalidKey is returned for empty, absolute or traversing keys.
var ErrInvalidKey = errors.New("blob: invalid key")

// Config selects and configures a backend.
type Config struct {
	Driver    Driver
	FSRoot    string
	PublicURL string
	S3        S3Config
}

// NewConfig derives the blob configuration from the application config.
func NewConfig(app *config.Config) Config {
	return Config{
		Driver:    Driver(app.BlobDriver),
		FSRoot:    app.BlobFSRoot,
		PublicURL: app.BlobPublicURL,
		S3: S3Config{
			Bucket:          app.S3Bucket,
			Region:          app.S3Region,
			Endpoint:        app.S3Endpoint,
			PathStyle:       app.S3PathStyle,
			AccessKeyID:     app.S3AccessKey,
			SecretAccessKey: app.S3SecretKey,
			PublicURL:       app.BlobPublicURL,
		},
	}
}

// Open returns the Store selected by cfg.Driver (fs when empty).
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", DriverFilesystem:
		return NewFilesystem(cfg.FSRoot, cfg.PublicURL)
	case DriverS3:
		return NewS3(ctx, cfg.S3)
	case DriverMemory:
		return NewMemory(cfg.PublicURL), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
	}
}

// cleanKey rejects keys that could escape the store root.
func cleanKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}
	return path.Clean(key), nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
