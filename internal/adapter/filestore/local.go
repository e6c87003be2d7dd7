package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Theternos/TaskFlow-sub001/internal/core/domain"
	"github.com/Theternos/TaskFlow-sub001/internal/core/ports"
)

// Local stores uploads on disk under one directory, with uuid names so
// originals can collide without clobbering each other.
type Local struct {
	dir string
}

var _ ports.FileStore = (*Local)(nil)

func NewLocal(dir string) (*Local, error) {
	if dir == "" {
		return nil, errors.New("filestore: dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create upload dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Store(_ context.Context, originalName string, r io.Reader) (domain.FileMeta, error) {
	name := uuid.NewString() + filepath.Ext(originalName)
	path := filepath.Join(l.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return domain.FileMeta{}, fmt.Errorf("filestore: create %s: %w", path, err)
	}

	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return domain.FileMeta{}, fmt.Errorf("filestore: write %s: %w", path, err)
	}

	return domain.FileMeta{
		Filename:     name,
		OriginalName: originalName,
		Path:         path,
		Size:         size,
	}, nil
}

func (l *Local) Delete(_ context.Context, path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("filestore: delete %s: %w", path, err)
	}
	return nil
}
