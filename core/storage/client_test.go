package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"plain endpoint", Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Region: "us-east-1"}},
		{"http scheme", Config{Endpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s"}},
		{"https scheme", Config{Endpoint: "https://s3.amazonaws.com", AccessKey: "k", SecretKey: "s", UseSSL: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestConfig_Host(t *testing.T) {
	assert.Equal(t, "minio:9000", Config{Endpoint: "http://minio:9000"}.host())
	assert.Equal(t, "s3.amazonaws.com", Config{Endpoint: "https://s3.amazonaws.com"}.host())
	assert.Equal(t, "minio:9000", Config{Endpoint: "minio:9000"}.host())
}

func TestConfig_Timeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, Config{}.timeout())
	assert.Equal(t, 5*time.Second, Config{TimeoutSeconds: 5}.timeout())

	tr := newTransport(5 * time.Second)
	assert.Equal(t, 5*time.Second, tr.TLSHandshakeTimeout)
	assert.Equal(t, 5*time.Second, tr.ResponseHeaderTimeout)
}
