package s3_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocrdesk/internal/config"
	"ocrdesk/internal/storage/s3"
)

func TestNewImageStore_RequiresBucket(t *testing.T) {
	_, err := s3.NewImageStore(context.Background(), &config.S3Config{Region: "us-east-1"})

	assert.Error(t, err)
}

func TestNewImageStore_StaticCredentials(t *testing.T) {
	store, err := s3.NewImageStore(context.Background(), &config.S3Config{
		Region:    "us-east-1",
		Bucket:    "ocr-images",
		Endpoint:  "http://localhost:4566",
		AccessKey: "test",
		SecretKey: "test",
	})

	require.NoError(t, err)
	assert.NotNil(t, store)
}

func TestPresignGet_UsesEndpoint(t *testing.T) {
	store, err := s3.NewImageStore(context.Background(), &config.S3Config{
		Region:        "us-east-1",
		Bucket:        "ocr-images",
		Endpoint:      "http://localhost:4566",
		AccessKey:     "test",
		SecretKey:     "test",
		PresignExpiry: 60,
	})
	require.NoError(t, err)

	url, err := store.PresignGet(context.Background(), "users/u/images/a.png")

	require.NoError(t, err)
	assert.Contains(t, url, "http://localhost:4566/ocr-images/users/u/images/a.png")
	assert.Contains(t, url, "X-Amz-Expires=60")
}
