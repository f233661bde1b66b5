package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidReference is returned when a package reference string is malformed.
	ErrInvalidReference = zerr.New("invalid reference")

	// ErrInvalidVersionRange is returned when a version range expression cannot be parsed.
	ErrInvalidVersionRange = zerr.New("invalid version range")

	// ErrSchema is returned when a settings schema is structurally invalid.
	ErrSchema = zerr.New("invalid settings schema")

	// ErrUndefinedValue is returned when a setting or option path is not declared.
	ErrUndefinedValue = zerr.New("undefined setting or option")

	// ErrInvalidValue is returned when a value is not part of a closed enumeration.
	ErrInvalidValue = zerr.New("invalid value")

	// ErrDuplicateRequirement is returned when a recipe declares the same package twice.
	ErrDuplicateRequirement = zerr.New("duplicated requirement")

	// ErrVersionRangeNoResult is returned when no available version satisfies a range.
	ErrVersionRangeNoResult = zerr.New("version range has no result")

	// ErrConflict is returned when two requirers demand incompatible versions of a package.
	ErrConflict = zerr.New("version conflict")

	// ErrDependencyLoop is returned when the resolved graph contains a cycle.
	ErrDependencyLoop = zerr.New("dependency loop detected")

	// ErrRecipe is returned when a recipe hook fails during graph expansion.
	ErrRecipe = zerr.New("recipe error")

	// ErrRecipeHook is returned when a recipe hook fails during identity computation.
	ErrRecipeHook = zerr.New("recipe hook error")

	// ErrRecipeNotFound is returned when the oracle has no recipe for a reference.
	ErrRecipeNotFound = zerr.New("recipe not found")

	// ErrInvalidConfiguration is returned by recipes that reject the current configuration.
	// The graph builder records it as a deferred failure instead of aborting.
	ErrInvalidConfiguration = zerr.New("invalid configuration")

	// ErrPackageIDFrozen is returned when a node's package id is assigned twice.
	ErrPackageIDFrozen = zerr.New("package id already computed")

	// ErrOptionsFrozen is returned when options are modified after identity computation.
	ErrOptionsFrozen = zerr.New("options are frozen")

	// ErrComponentNotFound is returned when a component requires an unknown component.
	ErrComponentNotFound = zerr.New("component not found")

	// ErrComponentRequires is returned when component requirements are inconsistent.
	ErrComponentRequires = zerr.New("invalid component requirements")

	// ErrComponentCycle is returned when components of one package require each other in a loop.
	ErrComponentCycle = zerr.New("component requirements loop")

	// ErrResolutionAborted is returned when the resolution restarts more often than allowed.
	ErrResolutionAborted = zerr.New("resolution did not converge")

	// ErrNodeNotFound is returned when a requested package is not part of the graph.
	ErrNodeNotFound = zerr.New("package not found in graph")

	// ErrMissingBinaries is returned when binaries are missing and building is disallowed.
	ErrMissingBinaries = zerr.New("missing prebuilt package binaries")

	// ErrConfigReadFailed is returned when a configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read configuration file")

	// ErrConfigParseFailed is returned when a configuration file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse configuration file")

	// ErrIncludeLoop is returned when profile includes reference each other.
	ErrIncludeLoop = zerr.New("profile include loop")

	// ErrUnknownPackageIDMode is returned for an unknown package id mode name.
	ErrUnknownPackageIDMode = zerr.New("unknown package id mode")

	// ErrUnknownBuildPolicy is returned for an unknown build policy name.
	ErrUnknownBuildPolicy = zerr.New("unknown build policy")

	// ErrStoreReadFailed is returned when the lockfile store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read lockfile")

	// ErrStoreWriteFailed is returned when the lockfile store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write lockfile")

	// ErrUnknownToolchain is returned when no toolchain strategy is registered for a name.
	ErrUnknownToolchain = zerr.New("unknown toolchain strategy")
)
