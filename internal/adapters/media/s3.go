package media

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"aurora_hotel/internal/shared"
)

type s3Store struct {
	cl     *minio.Client
	bucket string
	base   string // public URL base, virtual-hosted style
}

func newS3(cfg shared.S3Config) (*s3Store, error) {
	cl, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	scheme := "https"
	if !cfg.UseSSL {
		scheme = "http"
	}
	return &s3Store{
		cl:     cl,
		bucket: cfg.Bucket,
		base:   fmt.Sprintf("%s://%s.%s", scheme, cfg.Bucket, cfg.Endpoint),
	}, nil
}

func (s *s3Store) put(ctx context.Context, r io.Reader, size int64, originalFilename string) (string, error) {
	_, err := s.cl.PutObject(ctx, s.bucket, originalFilename, r, size,
		minio.PutObjectOptions{ContentType: contentType(originalFilename)})
	if err != nil {
		return "", err
	}
	return s.base + "/" + originalFilename, nil
}

func (s *s3Store) name() string { return "s3" }
