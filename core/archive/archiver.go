package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"stock-reconciler/core/storage"

	"github.com/minio/minio-go/v7"
)

// Archiver persists a JSON snapshot of a record before it disappears from
// the relational store. Implementations must be safe for concurrent use.
type Archiver interface {
	// Archive stores payload as JSON under the given key.
	Archive(ctx context.Context, key string, payload any) error
}

// ObjectArchiver writes snapshots to an object storage bucket.
type ObjectArchiver struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObjectArchiver creates an archiver writing to bucket under prefix.
func NewObjectArchiver(client storage.Client, bucket, prefix string) *ObjectArchiver {
	return &ObjectArchiver{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Archive marshals payload and uploads it as <prefix>/<key>.json.
func (a *ObjectArchiver) Archive(ctx context.Context, key string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal archive record: %w", err)
	}

	objectName := fmt.Sprintf("%s/%s.json", a.prefix, key)

	_, err = a.client.PutObject(
		ctx,
		a.bucket,
		objectName,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to upload archive record %s: %w", objectName, err)
	}

	return nil
}

// Fetch retrieves a previously archived record by key.
func (a *ObjectArchiver) Fetch(ctx context.Context, key string) ([]byte, error) {
	objectName := fmt.Sprintf("%s/%s.json", a.prefix, key)

	reader, err := a.client.GetObject(ctx, a.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get archive record %s: %w", objectName, err)
	}
	defer reader.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, fmt.Errorf("failed to read archive record %s: %w", objectName, err)
	}
	return buf.Bytes(), nil
}
