package ports

import "go.trai.ch/keel/internal/core/domain"

// Recipe is the static description of how to build one reference.
//
//go:generate go run go.uber.org/mock/mockgen -source=recipe.go -destination=mocks/mock_recipe.go -package=mocks
type Recipe interface {
	// DeclaredSettings names the top-level settings the recipe depends on.
	DeclaredSettings() []string

	// DeclaredOptions returns the options with their allowed values and defaults.
	DeclaredOptions() []domain.OptionDef

	// DownstreamOptions returns option values the recipe imposes on its
	// dependencies, e.g. "zlib:shared=True".
	DownstreamOptions() []domain.OptionAssignment

	// Instantiate binds the recipe to one configuration. The instance owns
	// settings and options and may mutate them until the package id is computed.
	Instantiate(settings *domain.Settings, options *domain.Options) (RecipeInstance, error)
}

// RecipeInstance exposes the lifecycle hooks run during graph expansion, in
// the order ConfigOptions, Configure, Requirements, BuildRequirements.
type RecipeInstance interface {
	// ConfigOptions adjusts options depending on settings, e.g. removes fPIC on Windows.
	ConfigOptions() error

	// Configure prunes settings and options the binary does not depend on. A
	// configuration the recipe cannot build returns domain.ErrInvalidConfiguration.
	Configure() error

	// Requirements appends the runtime and link requirements.
	Requirements(reqs *domain.Requirements) error

	// BuildRequirements appends the build-time tool requirements.
	BuildRequirements(reqs *domain.Requirements) error
}

// PackageIDHook lets a recipe edit the identity input of its package id.
type PackageIDHook interface {
	PackageID(info *domain.PackageInfo) error
}

// CompatibilityHook lets a recipe propose binaries it accepts as substitutes,
// in order of preference.
type CompatibilityHook interface {
	Compatibility(info *domain.PackageInfo) ([]*domain.PackageInfo, error)
}

// PackageInfoHook publishes the build and link metadata of a package.
type PackageInfoHook interface {
	PackageInfo(info *domain.CppInfo) error
}

// CppstdCompatible marks a recipe whose binaries are interchangeable across
// C++ standards of the same compiler.
type CppstdCompatible interface {
	CppstdCompatible() bool
}
