package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Theternos/TaskFlow-sub001/internal/core/domain"
	"github.com/Theternos/TaskFlow-sub001/internal/core/ports"
)

// Store persists the whole document as one JSON file. Saves go through
// a temp file in the same directory plus a rename, so readers never see
// a partial write.
type Store struct {
	path string
}

var _ ports.Store = (*Store)(nil)

func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("jsonfile: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile: create data dir: %w", err)
	}
	return &Store{path: path}, nil
}

func (s *Store) Load(_ context.Context) (domain.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return emptySnapshot(), nil
		}
		return domain.Snapshot{}, fmt.Errorf("jsonfile: read %s: %w", s.path, err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("jsonfile: decode %s: %w", s.path, err)
	}
	if snap.Users == nil {
		snap.Users = []domain.User{}
	}
	if snap.Tasks == nil {
		snap.Tasks = []domain.Task{}
	}
	if snap.Tags == nil {
		snap.Tags = []string{}
	}
	normalize(&snap)
	return snap, nil
}

func (s *Store) Save(_ context.Context, snap domain.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tasks-*.json")
	if err != nil {
		return fmt.Errorf("jsonfile: create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: replace %s: %w", s.path, err)
	}
	return nil
}

func emptySnapshot() domain.Snapshot {
	return domain.Snapshot{
		Users: []domain.User{},
		Tasks: []domain.Task{},
		Tags:  []string{},
	}
}

// normalize repairs invariants the stored document cannot be trusted
// to hold: mail stays enabled for every user.
func normalize(snap *domain.Snapshot) {
	for i := range snap.Users {
		snap.Users[i].Integrations.Mail = true
	}
}
