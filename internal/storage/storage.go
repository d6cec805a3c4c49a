// Package storage keeps binary assets, product images today, in an S3-compatible object store.
package storage

import (
	"context"
	"errors"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxImageBytes is the largest product image accepted for upload.
const MaxImageBytes = 5 << 20

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrNotAnImage     = errors.New("content type must be image/*")
	ErrImageTooLarge  = errors.New("image exceeds 5 MiB")
	ErrEmptyObject    = errors.New("object is empty")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size is the exact number of bytes, or -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is an S3-compatible object store. Implementations stream and never touch local disk.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get returns the object content; callers close the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// ValidateImage checks an upload against the product image rules.
func ValidateImage(contentType string, size int64) error {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mt, "image/") {
		return ErrNotAnImage
	}
	if size == 0 {
		return ErrEmptyObject
	}
	if size > MaxImageBytes {
		return ErrImageTooLarge
	}
	return nil
}

// ProductImageKey returns a fresh object key products/<product_id>/<uuid><ext>.
// The extension comes from the file name when present, else from the content type.
func ProductImageKey(productID, filename, contentType string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}
	return "products/" + productID + "/" + uuid.NewString() + ext
}
