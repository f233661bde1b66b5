// Package fakes provides in-memory implementations of the oracle ports, used
// by engine and app tests to describe small package universes.
package fakes

import (
	"context"
	"slices"
	"sync"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/zerr"
)

// Revision is the revision every fake recipe reports.
const Revision = "r1"

// Recipe is a recipe described by plain fields. Every hook is implemented;
// nil funcs are no-ops.
type Recipe struct {
	Settings      []string
	Options       []domain.OptionDef
	Downstream    []domain.OptionAssignment
	Requires      []string
	Private       []string
	Overrides     []string
	BuildRequires []string

	// Invalid makes Configure report an invalid configuration.
	Invalid string
	// RemoveSettings are pruned by Configure.
	RemoveSettings []string
	// Err fails the Requirements hook.
	Err error

	PackageIDFunc     func(info *domain.PackageInfo) error
	CompatibilityFunc func(info *domain.PackageInfo) ([]*domain.PackageInfo, error)
	InfoFunc          func(info *domain.CppInfo) error
	Cppstd            bool
}

var _ ports.Recipe = (*Recipe)(nil)

// DeclaredSettings implements ports.Recipe.
func (r *Recipe) DeclaredSettings() []string { return r.Settings }

// DeclaredOptions implements ports.Recipe.
func (r *Recipe) DeclaredOptions() []domain.OptionDef { return r.Options }

// DownstreamOptions implements ports.Recipe.
func (r *Recipe) DownstreamOptions() []domain.OptionAssignment { return r.Downstream }

// Instantiate implements ports.Recipe.
func (r *Recipe) Instantiate(settings *domain.Settings, options *domain.Options) (ports.RecipeInstance, error) {
	return &Instance{recipe: r, Settings: settings, Options: options}, nil
}

// Instance is a bound fake recipe.
type Instance struct {
	recipe   *Recipe
	Settings *domain.Settings
	Options  *domain.Options
}

// ConfigOptions implements ports.RecipeInstance.
func (i *Instance) ConfigOptions() error { return nil }

// Configure implements ports.RecipeInstance.
func (i *Instance) Configure() error {
	if i.recipe.Invalid != "" {
		return zerr.Wrap(domain.ErrInvalidConfiguration, i.recipe.Invalid)
	}
	for _, s := range i.recipe.RemoveSettings {
		i.Settings.Remove(s)
	}
	return nil
}

// Requirements implements ports.RecipeInstance.
func (i *Instance) Requirements(reqs *domain.Requirements) error {
	if i.recipe.Err != nil {
		return i.recipe.Err
	}
	for _, text := range i.recipe.Requires {
		if err := reqs.Add(text); err != nil {
			return err
		}
	}
	for _, text := range i.recipe.Private {
		if err := reqs.Add(text, domain.Private()); err != nil {
			return err
		}
	}
	for _, text := range i.recipe.Overrides {
		if err := reqs.Add(text, domain.Override()); err != nil {
			return err
		}
	}
	return nil
}

// BuildRequirements implements ports.RecipeInstance.
func (i *Instance) BuildRequirements(reqs *domain.Requirements) error {
	for _, text := range i.recipe.BuildRequires {
		if err := reqs.Add(text); err != nil {
			return err
		}
	}
	return nil
}

// PackageID implements ports.PackageIDHook.
func (i *Instance) PackageID(info *domain.PackageInfo) error {
	if i.recipe.PackageIDFunc == nil {
		return nil
	}
	return i.recipe.PackageIDFunc(info)
}

// Compatibility implements ports.CompatibilityHook.
func (i *Instance) Compatibility(info *domain.PackageInfo) ([]*domain.PackageInfo, error) {
	if i.recipe.CompatibilityFunc == nil {
		return nil, nil
	}
	return i.recipe.CompatibilityFunc(info)
}

// CppstdCompatible implements ports.CppstdCompatible.
func (i *Instance) CppstdCompatible() bool { return i.recipe.Cppstd }

// PackageInfo implements ports.PackageInfoHook.
func (i *Instance) PackageInfo(info *domain.CppInfo) error {
	if i.recipe.InfoFunc == nil {
		return nil
	}
	return i.recipe.InfoFunc(info)
}

// Oracle serves fake recipes and binaries. Versions are listed in the order
// they were added.
type Oracle struct {
	mu       sync.Mutex
	recipes  map[string]*Recipe
	versions map[string][]string
	binaries map[string]bool
}

var _ ports.Oracle = (*Oracle)(nil)

// NewOracle creates an empty oracle.
func NewOracle() *Oracle {
	return &Oracle{
		recipes:  make(map[string]*Recipe),
		versions: make(map[string][]string),
		binaries: make(map[string]bool),
	}
}

// Add registers a recipe under "name/version[@user/channel]". It panics on a
// malformed reference.
func (o *Oracle) Add(ref string, r *Recipe) *Oracle {
	parsed := domain.MustParseReference(ref)
	o.mu.Lock()
	defer o.mu.Unlock()
	key := recipeKey(parsed)
	if _, ok := o.recipes[key]; !ok {
		o.versions[parsed.PackageKey()] = append(o.versions[parsed.PackageKey()], parsed.Version)
	}
	o.recipes[key] = r
	return o
}

// AddBinary makes a prebuilt binary of ref available for download.
func (o *Oracle) AddBinary(ref, packageID string) *Oracle {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.binaries[recipeKey(domain.MustParseReference(ref))+":"+packageID] = true
	return o
}

// ListVersions implements ports.Oracle.
func (o *Oracle) ListVersions(ctx context.Context, ref domain.Reference) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.versions[ref.PackageKey()]), nil
}

// RecipeFor implements ports.Oracle.
func (o *Oracle) RecipeFor(ctx context.Context, ref domain.Reference) (ports.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	r, ok := o.recipes[recipeKey(ref)]
	if !ok || (ref.Revision != "" && ref.Revision != Revision) {
		return nil, notFound(ref)
	}
	return r, nil
}

// BinaryExists implements ports.Oracle.
func (o *Oracle) BinaryExists(ctx context.Context, bref domain.BinaryReference) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.binaries[recipeKey(bref.Ref)+":"+bref.PackageID], nil
}

// LatestRevision implements ports.Oracle.
func (o *Oracle) LatestRevision(ctx context.Context, ref domain.Reference) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.recipes[recipeKey(ref)]; !ok {
		return "", notFound(ref)
	}
	return Revision, nil
}

// Cache is an in-memory ports.PackageCache.
type Cache struct {
	mu       sync.Mutex
	binaries map[string]bool
}

var _ ports.PackageCache = (*Cache)(nil)

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{binaries: make(map[string]bool)}
}

// Add marks a binary of ref as installed.
func (c *Cache) Add(ref, packageID string) *Cache {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.binaries[recipeKey(domain.MustParseReference(ref))+":"+packageID] = true
	return c
}

// Has implements ports.PackageCache.
func (c *Cache) Has(_ context.Context, bref domain.BinaryReference) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.binaries[recipeKey(bref.Ref)+":"+bref.PackageID], nil
}

func recipeKey(ref domain.Reference) string {
	return ref.PackageKey() + "/" + ref.Version
}

func notFound(ref domain.Reference) error {
	return zerr.With(zerr.Wrap(domain.ErrRecipeNotFound, ref.String()), "reference", ref.String())
}
