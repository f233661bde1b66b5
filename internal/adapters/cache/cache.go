// Package cache implements the local package cache on the filesystem.
package cache

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// PackagesDirName holds the binaries of one recipe version.
	PackagesDirName = "package"
	// ReferenceFileName records the full reference of an installed binary.
	ReferenceFileName = "reference"
	noUser            = "_"
)

// Cache implements ports.PackageCache. Binaries live under
// <root>/<name>/<version>/<user>/<channel>/package/<package_id>.
type Cache struct {
	root string
}

var _ ports.PackageCache = (*Cache)(nil)

// New creates a Cache rooted at dir.
func New(dir string) *Cache {
	return &Cache{root: dir}
}

// PackagePath returns the directory of a binary.
func (c *Cache) PackagePath(bref domain.BinaryReference) string {
	user, channel := bref.Ref.User, bref.Ref.Channel
	if user == "" {
		user, channel = noUser, noUser
	}
	return filepath.Join(c.root, bref.Ref.Name, bref.Ref.Version, user, channel, PackagesDirName, bref.PackageID)
}

// Has implements ports.PackageCache.
func (c *Cache) Has(ctx context.Context, bref domain.BinaryReference) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	info, err := os.Stat(c.PackagePath(bref))
	switch {
	case err == nil:
		return info.IsDir(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, zerr.With(zerr.Wrap(err, "failed to inspect package cache"), "package", bref.String())
	}
}

// Add registers a binary as installed.
func (c *Cache) Add(bref domain.BinaryReference) error {
	dir := c.PackagePath(bref)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create package directory"), "package", bref.String())
	}
	path := filepath.Join(dir, ReferenceFileName)
	if err := os.WriteFile(path, []byte(bref.String()+"\n"), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write package reference"), "package", bref.String())
	}
	return nil
}
