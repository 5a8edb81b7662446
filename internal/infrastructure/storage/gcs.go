// Package storage provides the Google Cloud Storage adapter for product
// images. Objects are public-read; the returned URL is stored on the product
// row and handed straight to clients.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

const objectPrefix = "products/"

// GCSImageStore uploads product images to a Google Cloud Storage bucket.
type GCSImageStore struct {
	client *storage.Client
	bucket string
}

// NewGCSImageStore creates a client for the given bucket. If credsPath is
// empty, Application Default Credentials are used.
func NewGCSImageStore(ctx context.Context, bucket, credsPath string) (*GCSImageStore, error) {
	var client *storage.Client
	var err error
	if credsPath == "" {
		client, err = storage.NewClient(ctx)
	} else {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
	}
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &GCSImageStore{client: client, bucket: bucket}, nil
}

// Upload stores the image under a random object name and returns its public
// URL. The original filename only contributes its extension.
func (s *GCSImageStore) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	object := objectPrefix + uuid.NewString() + strings.ToLower(path.Ext(filename))

	wc := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("gcs upload: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("gcs upload: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, object), nil
}

// Delete removes the object behind a previously returned public URL. URLs
// that do not point into this bucket are ignored.
func (s *GCSImageStore) Delete(ctx context.Context, imageURL string) error {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", s.bucket)
	object := strings.TrimPrefix(imageURL, prefix)
	if object == imageURL || object == "" {
		return nil
	}
	if err := s.client.Bucket(s.bucket).Object(object).Delete(ctx); err != nil {
		return fmt.Errorf("gcs delete %s: %w", object, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *GCSImageStore) Close() error {
	return s.client.Close()
}
