// Package media stores uploaded images and hands back a URL to drop into
// an imageUrl field. With MinIO configured the bytes go to object storage;
// without it they are inlined as a data: URL, exactly what the site's
// in-browser uploader used to produce.
package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var allowedTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Config holds the object storage settings. An empty Endpoint selects the
// data-URL fallback.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	MaxBytes  int64
}

// Service stores uploaded images.
type Service struct {
	cfg    Config
	client *minio.Client
}

// NewService builds the service, connecting to MinIO when configured and
// creating the bucket if missing. A MinIO that is down at startup degrades
// to the data-URL fallback rather than failing the boot.
func NewService(ctx context.Context, cfg Config) *Service {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 5 << 20
	}
	s := &Service{cfg: cfg}
	if cfg.Endpoint == "" {
		return s
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Printf("media: minio client init failed, using data-url fallback: %v", err)
		return s
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		log.Printf("media: minio unreachable, using data-url fallback: %v", err)
		return s
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			log.Printf("media: create bucket %s: %v", cfg.Bucket, err)
			return s
		}
	}

	s.client = client
	return s
}

// ObjectStorage reports whether uploads land in MinIO.
func (s *Service) ObjectStorage() bool {
	return s.client != nil
}

// Store validates the image and returns its URL. contentType must be one
// of the allowed image types and data must fit the size cap.
func (s *Service) Store(ctx context.Context, contentType string, data []byte) (string, error) {
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", contentType)
	}
	if int64(len(data)) > s.cfg.MaxBytes {
		return "", fmt.Errorf("image exceeds %d byte limit", s.cfg.MaxBytes)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty image")
	}

	if s.client == nil {
		return dataURL(contentType, data), nil
	}

	name := uuid.NewString() + ext
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		// Degrade the same way the browser uploader did rather than losing
		// the image.
		log.Printf("media: put object %s failed, inlining as data url: %v", name, err)
		return dataURL(contentType, data), nil
	}

	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, name), nil
}

func dataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
