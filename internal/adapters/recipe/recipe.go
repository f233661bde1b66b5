// Package recipe implements declarative recipes read from recipe.yaml files.
package recipe

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileName is the conventional name of a recipe manifest.
const FileName = "recipe.yaml"

// Recipe implements ports.Recipe on top of a parsed Manifest.
type Recipe struct {
	manifest   Manifest
	ref        domain.Reference
	revision   string
	options    []domain.OptionDef
	downstream []domain.OptionAssignment
	modes      map[string]domain.PackageIDMode
	allMode    domain.PackageIDMode
}

var _ ports.Recipe = (*Recipe)(nil)

// Load reads and parses the manifest at path.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the repository index
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrRecipeNotFound, err.Error()), "path", path)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return r, nil
}

// Parse decodes a manifest. Unknown keys are rejected. The revision of the
// recipe is the xxhash of data.
func Parse(data []byte) (*Recipe, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, zerr.Wrap(domain.ErrRecipe, "malformed recipe: "+err.Error())
	}

	ref, err := domain.ParseReference(m.Name + "/" + m.Version)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrRecipe, "recipe name and version"), "cause", err.Error())
	}

	r := &Recipe{
		manifest: m,
		ref:      ref,
		revision: fmt.Sprintf("%016x", xxhash.Sum64(data)),
		modes:    make(map[string]domain.PackageIDMode),
	}
	if err := r.compile(); err != nil {
		return nil, zerr.With(err, "reference", ref.String())
	}
	return r, nil
}

func (r *Recipe) compile() error {
	names := sortedKeys(r.manifest.Options)
	for _, name := range names {
		dto := r.manifest.Options[name]
		def := domain.OptionDef{Name: name}
		for _, v := range dto.Values {
			if v == domain.AnyValue {
				def.Any = true
				continue
			}
			def.Values = append(def.Values, v)
		}
		if dto.Default != nil {
			def.Default, def.HasDefault = *dto.Default, true
		}
		r.options = append(r.options, def)
	}
	if _, err := domain.NewOptions(r.options); err != nil {
		return err
	}

	for _, key := range sortedKeys(r.manifest.DefaultOptions) {
		a, err := domain.ParseOptionAssignment(key + "=" + r.manifest.DefaultOptions[key])
		if err != nil {
			return err
		}
		if a.Pattern == "" {
			return zerr.With(zerr.Wrap(domain.ErrRecipe, "default option without package pattern: "+key), "option", key)
		}
		r.downstream = append(r.downstream, a)
	}

	pid := r.manifest.PackageID
	if pid.RequiresMode != "" {
		mode, err := domain.ParsePackageIDMode(pid.RequiresMode)
		if err != nil {
			return err
		}
		r.allMode = mode
	}
	for name, text := range pid.Requires {
		mode, err := domain.ParsePackageIDMode(text)
		if err != nil {
			return zerr.With(err, "dependency", name)
		}
		r.modes[name] = mode
	}
	return nil
}

// Ref returns the reference the recipe declares, without revision.
func (r *Recipe) Ref() domain.Reference {
	return r.ref
}

// Revision returns the content hash of the manifest.
func (r *Recipe) Revision() string {
	return r.revision
}

// DeclaredSettings implements ports.Recipe.
func (r *Recipe) DeclaredSettings() []string {
	return slices.Clone(r.manifest.Settings)
}

// DeclaredOptions implements ports.Recipe.
func (r *Recipe) DeclaredOptions() []domain.OptionDef {
	return slices.Clone(r.options)
}

// DownstreamOptions implements ports.Recipe.
func (r *Recipe) DownstreamOptions() []domain.OptionAssignment {
	return slices.Clone(r.downstream)
}

// Instantiate implements ports.Recipe.
func (r *Recipe) Instantiate(settings *domain.Settings, options *domain.Options) (ports.RecipeInstance, error) {
	return &Instance{recipe: r, settings: settings, options: options}, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func conditionKey(key string) (option string, isOption bool) {
	return strings.CutPrefix(key, "options.")
}
