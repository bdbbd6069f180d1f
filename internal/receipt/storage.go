package receipt

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// Storage archives uploaded receipt images in a GCS bucket.
// Application Default Credentials are assumed to be configured.
type Storage struct {
	client *storage.Client
	bucket string
}

// NewStorage creates a storage wrapper for the given bucket
func NewStorage(client *storage.Client, bucket string) *Storage {
	return &Storage{client: client, bucket: bucket}
}

// Upload stores the image under a random object name and returns its gs:// URI
func (s *Storage) Upload(ctx context.Context, r io.Reader, contentType string) (string, error) {
	objectName := fmt.Sprintf("receipts/%s", uuid.NewString())

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to copy receipt to storage: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize receipt upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", s.bucket, objectName), nil
}
