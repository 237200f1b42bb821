package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"notekeeper/internal/config"
)

func TestNewMinIO_Validation(t *testing.T) {
	full := config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "ak", SecretKey: "sk", Bucket: "notes"}

	tests := []struct {
		name    string
		mutate  func(c *config.MinIOConfig)
		wantErr string
	}{
		{"missing endpoint", func(c *config.MinIOConfig) { c.Endpoint = "" }, "minio endpoint is required"},
		{"missing access key", func(c *config.MinIOConfig) { c.AccessKey = "" }, "minio credentials are required"},
		{"missing secret key", func(c *config.MinIOConfig) { c.SecretKey = "" }, "minio credentials are required"},
		{"missing bucket", func(c *config.MinIOConfig) { c.Bucket = "" }, "minio bucket is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := full
			tt.mutate(&cfg)

			s, err := NewMinIO(context.Background(), cfg)

			assert.Nil(t, s)
			assert.EqualError(t, err, tt.wantErr)
		})
	}

	assert.NoError(t, validate(full))
}
