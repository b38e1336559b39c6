package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
)

func TestNewS3Store_DisabledWithoutBucket(t *testing.T) {
	s := NewS3Store(&config.Config{})
	assert.Nil(t, s)

	_, err := s.Put(context.Background(), "k", "image/webp", []byte("x"))
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewS3Store_PublicURL(t *testing.T) {
	s := NewS3Store(&config.Config{S3Bucket: "photos", S3Region: "eu-central-1"})
	assert.Equal(t, "https://photos.s3.eu-central-1.amazonaws.com", s.publicURL)

	s = NewS3Store(&config.Config{S3Bucket: "photos", S3Region: "us-east-1", S3Endpoint: "http://minio:9000/"})
	assert.Equal(t, "http://minio:9000/photos", s.publicURL)

	s = NewS3Store(&config.Config{S3Bucket: "photos", S3PublicURL: "https://cdn.salon.test/"})
	assert.Equal(t, "https://cdn.salon.test", s.publicURL)
}
