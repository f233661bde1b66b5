// Package repository implements the oracle over a recipe repository on disk.
package repository

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/keel/internal/adapters/recipe"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

type entry struct {
	ref      domain.Reference
	path     string
	revision string
	binaries []string
	recipe   *recipe.Recipe
}

// Repository implements ports.Oracle. The index is read on first use.
type Repository struct {
	root string

	once    sync.Once
	loadErr error

	mu      sync.Mutex
	entries []*entry
}

var _ ports.Oracle = (*Repository)(nil)

// New creates a Repository rooted at dir.
func New(dir string) *Repository {
	return &Repository{root: dir}
}

func (r *Repository) load() error {
	r.once.Do(func() {
		r.loadErr = r.readIndex()
	})
	return r.loadErr
}

func (r *Repository) readIndex() error {
	path := filepath.Join(r.root, domain.RepositoryIndexName)
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the keel home
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	var index IndexFile
	if err := yaml.Unmarshal(data, &index); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
	}
	for i, dto := range index.Recipes {
		ref, err := domain.ParseReference(dto.Ref)
		if err != nil {
			return zerr.With(zerr.With(err, "path", path), "entry", i)
		}
		if ref.Revision != "" {
			return zerr.With(zerr.Wrap(domain.ErrInvalidReference, "index references carry no revision: "+dto.Ref), "path", path)
		}
		p := dto.Path
		if p == "" {
			p = filepath.Join(ref.Name, ref.Version, recipe.FileName)
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(r.root, p)
		}
		r.entries = append(r.entries, &entry{
			ref:      ref,
			path:     p,
			revision: dto.Revision,
			binaries: dto.Binaries,
		})
	}
	return nil
}

// resolve loads the manifest of e and fills its revision.
func (r *Repository) resolve(e *entry) error {
	if e.recipe != nil {
		return nil
	}
	rec, err := recipe.Load(e.path)
	if err != nil {
		return zerr.With(err, "reference", e.ref.String())
	}
	if rec.Ref().Name != e.ref.Name || rec.Ref().Version != e.ref.Version {
		err := zerr.Wrap(domain.ErrRecipe, "manifest declares "+rec.Ref().String())
		return zerr.With(zerr.With(err, "reference", e.ref.String()), "path", e.path)
	}
	e.recipe = rec
	if e.revision == "" {
		e.revision = rec.Revision()
	}
	return nil
}

// revisions returns the entries of a recipe version, oldest first, with
// their revisions resolved.
func (r *Repository) revisions(ref domain.Reference) ([]*entry, error) {
	var out []*entry
	for _, e := range r.entries {
		if !e.ref.SameRecipe(ref) {
			continue
		}
		if err := r.resolve(e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// find returns the entry of ref: the given revision, or the latest one.
func (r *Repository) find(ref domain.Reference) (*entry, error) {
	revs, err := r.revisions(ref)
	if err != nil {
		return nil, err
	}
	if len(revs) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrRecipeNotFound, ref.String()), "reference", ref.String())
	}
	if ref.Revision == "" {
		return revs[len(revs)-1], nil
	}
	for _, e := range revs {
		if e.revision == ref.Revision {
			return e, nil
		}
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrRecipeNotFound, ref.String()), "reference", ref.String())
}

// ListVersions implements ports.Oracle. Versions keep index order.
func (r *Repository) ListVersions(ctx context.Context, ref domain.Reference) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var versions []string
	for _, e := range r.entries {
		if e.ref.SamePackage(ref) && !slices.Contains(versions, e.ref.Version) {
			versions = append(versions, e.ref.Version)
		}
	}
	return versions, nil
}

// RecipeFor implements ports.Oracle.
func (r *Repository) RecipeFor(ctx context.Context, ref domain.Reference) (ports.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.find(ref)
	if err != nil {
		return nil, err
	}
	return e.recipe, nil
}

// LatestRevision implements ports.Oracle.
func (r *Repository) LatestRevision(ctx context.Context, ref domain.Reference) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := r.load(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.find(ref.WithoutRevision())
	if err != nil {
		return "", err
	}
	return e.revision, nil
}

// BinaryExists implements ports.Oracle.
func (r *Repository) BinaryExists(ctx context.Context, bref domain.BinaryReference) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := r.load(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.find(bref.Ref)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return false, nil
		}
		return false, err
	}
	return slices.Contains(e.binaries, bref.PackageID), nil
}
