package s3_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distrobill/internal/config"
	s3storage "distrobill/internal/storage/s3"
)

func TestBucketStore_PresignGet(t *testing.T) {
	store, err := s3storage.NewBucketStore(context.Background(), &config.S3Config{
		Region:        "ap-south-1",
		Bucket:        "distrobill-test",
		Endpoint:      "http://localhost:9000",
		AccessKey:     "minio",
		SecretKey:     "minio-secret",
		PresignExpiry: 600,
	})
	require.NoError(t, err)

	raw, err := store.PresignGet(context.Background(), "challans/abc/invoice-CH-1.json")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/distrobill-test/challans/abc/invoice-CH-1.json", u.Path)
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
}
