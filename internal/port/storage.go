package port

import (
	"context"
	"io"
)

// PutObjectInput describes an image to store.
type PutObjectInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// PutObjectOutput contains the result of a successful upload.
type PutObjectOutput struct {
	Key      string
	Location string
}

// ImageStore persists uploaded images in a single bucket.
type ImageStore interface {
	Put(ctx context.Context, input PutObjectInput) (*PutObjectOutput, error)
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string) (string, error)
	Ping(ctx context.Context) error
}
