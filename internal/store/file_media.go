package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-story-sync/internal/logger"
)

// fileMediaStorage writes uploaded photos as plain files under one
// directory. Names are flat: no path separators are accepted.
type fileMediaStorage struct {
	dir    string
	logger *logger.Logger
}

// NewFileMediaStorage creates dir when missing and returns a [MediaStorage]
// rooted there.
func NewFileMediaStorage(dir string, logger *logger.Logger) (MediaStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating media dir: %w", err)
	}

	return &fileMediaStorage{dir: dir, logger: logger}, nil
}

// SaveMedia writes data atomically: a temp file in the same directory is
// renamed into place.
func (f *fileMediaStorage) SaveMedia(ctx context.Context, name string, data []byte) error {
	path, err := f.path(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error writing media: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error closing media: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		f.logger.Err(err).Str("func", "fileMediaStorage.SaveMedia").Str("name", name).Msg("error storing media")
		return fmt.Errorf("error storing media: %w", err)
	}

	return nil
}

func (f *fileMediaStorage) OpenMedia(ctx context.Context, name string) (io.ReadCloser, error) {
	path, err := f.path(name)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrMediaNotFound
		}
		return nil, fmt.Errorf("error opening media: %w", err)
	}

	return file, nil
}

func (f *fileMediaStorage) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrInvalidMediaName
	}

	return filepath.Join(f.dir, name), nil
}
