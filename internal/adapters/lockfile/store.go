// Package lockfile persists resolved graphs as JSON lockfiles.
package lockfile

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.LockfileStore using JSON files.
type Store struct {
	mu sync.Mutex
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the lockfile at path. A missing file yields nil, nil.
func (s *Store) Load(path string) (*domain.Lockfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, err.Error()), "path", path)
	}

	var lock domain.Lockfile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, "malformed lockfile: "+err.Error()), "path", path)
	}
	if lock.Version != domain.LockfileVersion {
		err := zerr.Wrap(domain.ErrStoreReadFailed, "unsupported lockfile version "+strconv.Itoa(lock.Version))
		return nil, zerr.With(err, "path", path)
	}
	return &lock, nil
}

// Save writes lock to path through a temporary file so readers never see a
// partial lockfile.
func (s *Store) Save(path string, lock *domain.Lockfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(lock, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", path)
	}
	data = append(data, '\n')

	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".keel-lock-*")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", path)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", path)
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", path)
	}
	return nil
}
