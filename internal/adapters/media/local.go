package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"aurora_hotel/internal/shared"
)

type localStore struct {
	dir    string
	prefix string
}

func newLocal(cfg shared.LocalConfig) (*localStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localStore{dir: cfg.Dir, prefix: cfg.URLPrefix}, nil
}

// put writes the photo under a UUID-based name so uploads with the same
// original filename never clobber each other.
func (s *localStore) put(ctx context.Context, r io.Reader, size int64, originalFilename string) (string, error) {
	name := uuid.NewString() + ext(originalFilename)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return s.prefix + "/" + name, nil
}

func (s *localStore) name() string { return "local" }
