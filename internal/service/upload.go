package service

import (
	"bufio"
	"context"
	"io"
	"net/http"

	"github.com/kingpotter-hr/full9-website/internal/metrics"
	"github.com/oklog/ulid/v2"
)

// ObjectStore stores uploaded objects and returns their public URL.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

var imageExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// UploadResult describes a stored image.
type UploadResult struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// UploadService stores admin image uploads.
type UploadService struct {
	objects  ObjectStore
	maxBytes int64
	metrics  metrics.Recorder
}

// NewUploadService creates an UploadService. objects may be nil, in which
// case every upload fails with ErrStorageDisabled.
func NewUploadService(objects ObjectStore, maxBytes int64, recorder metrics.Recorder) *UploadService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UploadService{objects: objects, maxBytes: maxBytes, metrics: recorder}
}

// Enabled reports whether object storage is configured.
func (s *UploadService) Enabled() bool {
	return s.objects != nil
}

// MaxBytes is the largest accepted upload.
func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// UploadImage sniffs the image type from its first bytes and stores it under
// uploads/<ulid>.<ext>.
func (s *UploadService) UploadImage(ctx context.Context, r io.Reader, size int64) (*UploadResult, error) {
	if s.objects == nil {
		return nil, ErrStorageDisabled
	}
	if size <= 0 {
		return nil, invalid("file", "is empty")
	}
	if size > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF {
		return nil, err
	}
	contentType := http.DetectContentType(head)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, ErrUnsupportedMedia
	}

	key := "uploads/" + ulid.Make().String() + "." + ext
	url, err := s.objects.Put(ctx, key, io.LimitReader(br, size), size, contentType)
	if err != nil {
		return nil, err
	}

	s.metrics.IncContentChange("upload", "create")
	return &UploadResult{URL: url, Key: key, ContentType: contentType, Size: size}, nil
}
