package storage

import (
	"errors"
	"testing"
)

func TestNewMinIO_RequiresConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty", Config{}},
		{"no bucket", Config{Endpoint: "s3.local:9000", AccessKey: "a", SecretKey: "b"}},
		{"no secret", Config{Endpoint: "s3.local:9000", AccessKey: "a", Bucket: "u"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMinIO(tt.cfg); !errors.Is(err, ErrMissingConfig) {
				t.Errorf("NewMinIO() error = %v, want ErrMissingConfig", err)
			}
		})
	}
}

func TestMinIO_URL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		key  string
		want string
	}{
		{
			name: "derived from endpoint",
			cfg:  Config{Endpoint: "s3.full9.co.th", AccessKey: "a", SecretKey: "b", Bucket: "full9-uploads", UseSSL: true},
			key:  "uploads/01HX.png",
			want: "https://s3.full9.co.th/full9-uploads/uploads/01HX.png",
		},
		{
			name: "plain http endpoint",
			cfg:  Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b", Bucket: "b"},
			key:  "/uploads/x.jpg",
			want: "http://localhost:9000/b/uploads/x.jpg",
		},
		{
			name: "explicit public url",
			cfg:  Config{Endpoint: "minio:9000", AccessKey: "a", SecretKey: "b", Bucket: "b", PublicURL: "https://cdn.full9.co.th/"},
			key:  "uploads/y.webp",
			want: "https://cdn.full9.co.th/uploads/y.webp",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMinIO(tt.cfg)
			if err != nil {
				t.Fatalf("NewMinIO() error = %v", err)
			}
			if got := m.URL(tt.key); got != tt.want {
				t.Errorf("URL(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
