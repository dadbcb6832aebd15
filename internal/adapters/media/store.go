// Package media persists uploaded room photos. The backend is chosen
// once from configuration: S3-compatible object storage when real
// credentials are configured, local disk otherwise. A failing backend
// is never silently swapped for the other at request time.
package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"aurora_hotel/internal/adapters/observability"
	"aurora_hotel/internal/domain"
	"aurora_hotel/internal/shared"
)

// maxConcurrentUploads bounds in-flight photo writes so a burst of
// admin uploads cannot exhaust sockets or disk bandwidth.
const maxConcurrentUploads = 4

type backend interface {
	put(ctx context.Context, r io.Reader, size int64, originalFilename string) (string, error)
	name() string
}

type Store struct {
	b   backend
	sem *semaphore.Weighted
}

// New resolves the configured backend. Exactly one branch of the
// config union is set; shared.Load guarantees that.
func New(cfg shared.MediaConfig) (*Store, error) {
	var (
		b   backend
		err error
	)
	switch {
	case cfg.S3 != nil:
		b, err = newS3(*cfg.S3)
	case cfg.Local != nil:
		b, err = newLocal(*cfg.Local)
	default:
		err = fmt.Errorf("media: no backend configured")
	}
	if err != nil {
		return nil, err
	}
	return &Store{b: b, sem: semaphore.NewWeighted(maxConcurrentUploads)}, nil
}

func (s *Store) Store(ctx context.Context, r io.Reader, size int64, originalFilename string) (string, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.sem.Release(1)

	start := time.Now()
	url, err := s.b.put(ctx, r, size, originalFilename)
	if err != nil {
		observability.ObserveMediaUpload(s.b.name(), "error", time.Since(start))
		return "", fmt.Errorf("%w: %s: %v", domain.ErrStorage, s.b.name(), err)
	}
	observability.ObserveMediaUpload(s.b.name(), "ok", time.Since(start))
	return url, nil
}

// ext returns the filename extension, defaulting to .jpg.
func ext(originalFilename string) string {
	if e := strings.ToLower(filepath.Ext(originalFilename)); e != "" {
		return e
	}
	return ".jpg"
}

func contentType(originalFilename string) string {
	if ct := mime.TypeByExtension(ext(originalFilename)); ct != "" {
		return ct
	}
	return "image/jpeg"
}
