package ports

import "go.trai.ch/keel/internal/core/domain"

// LockfileStore persists resolved graphs.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type LockfileStore interface {
	// Load reads a lockfile.
	// Returns nil, nil if not found.
	Load(path string) (*domain.Lockfile, error)

	// Save writes a lockfile, creating parent directories.
	Save(path string, lock *domain.Lockfile) error
}
