// Package oraclecache memoizes oracle answers for the duration of a process.
package oraclecache

import (
	"context"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultSize is the number of entries kept per query kind.
const DefaultSize = 1024

// Oracle wraps another ports.Oracle with LRU caches. Failed queries are not
// cached.
type Oracle struct {
	next      ports.Oracle
	versions  *lru.Cache[string, []string]
	recipes   *lru.Cache[string, ports.Recipe]
	revisions *lru.Cache[string, string]
	binaries  *lru.Cache[string, bool]
}

var _ ports.Oracle = (*Oracle)(nil)

// New wraps next with caches of size entries each.
func New(next ports.Oracle, size int) (*Oracle, error) {
	versions, err := lru.New[string, []string](size)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create version cache")
	}
	recipes, err := lru.New[string, ports.Recipe](size)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create recipe cache")
	}
	revisions, err := lru.New[string, string](size)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create revision cache")
	}
	binaries, err := lru.New[string, bool](size)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create binary cache")
	}
	return &Oracle{
		next:      next,
		versions:  versions,
		recipes:   recipes,
		revisions: revisions,
		binaries:  binaries,
	}, nil
}

// ListVersions implements ports.Oracle.
func (o *Oracle) ListVersions(ctx context.Context, ref domain.Reference) ([]string, error) {
	key := ref.PackageKey()
	if cached, ok := o.versions.Get(key); ok {
		return slices.Clone(cached), nil
	}
	versions, err := o.next.ListVersions(ctx, ref)
	if err != nil {
		return nil, err
	}
	o.versions.Add(key, slices.Clone(versions))
	return versions, nil
}

// RecipeFor implements ports.Oracle.
func (o *Oracle) RecipeFor(ctx context.Context, ref domain.Reference) (ports.Recipe, error) {
	key := ref.String()
	if cached, ok := o.recipes.Get(key); ok {
		return cached, nil
	}
	recipe, err := o.next.RecipeFor(ctx, ref)
	if err != nil {
		return nil, err
	}
	o.recipes.Add(key, recipe)
	return recipe, nil
}

// LatestRevision implements ports.Oracle.
func (o *Oracle) LatestRevision(ctx context.Context, ref domain.Reference) (string, error) {
	key := ref.WithoutRevision().String()
	if cached, ok := o.revisions.Get(key); ok {
		return cached, nil
	}
	rev, err := o.next.LatestRevision(ctx, ref)
	if err != nil {
		return "", err
	}
	o.revisions.Add(key, rev)
	return rev, nil
}

// BinaryExists implements ports.Oracle.
func (o *Oracle) BinaryExists(ctx context.Context, bref domain.BinaryReference) (bool, error) {
	key := bref.String()
	if cached, ok := o.binaries.Get(key); ok {
		return cached, nil
	}
	exists, err := o.next.BinaryExists(ctx, bref)
	if err != nil {
		return false, err
	}
	o.binaries.Add(key, exists)
	return exists, nil
}
