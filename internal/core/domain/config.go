package domain

// DefaultMaxParallelChecks bounds concurrent binary existence checks when the
// configuration does not.
const DefaultMaxParallelChecks = 8

// Config is the tool configuration read from keel.yaml.
type Config struct {
	// DefaultPackageIDMode is the contribution mode of dependencies to package ids.
	DefaultPackageIDMode PackageIDMode
	// ShareBuildRequires lets a build-requirement reuse an identical HOST node.
	ShareBuildRequires bool
	// BuildPolicy is the default policy for building from sources.
	BuildPolicy BuildPolicy
	// MaxParallelChecks bounds concurrent oracle queries.
	MaxParallelChecks int
}

// DefaultConfig returns the configuration used when no keel.yaml exists.
func DefaultConfig() *Config {
	return &Config{
		DefaultPackageIDMode: DefaultPackageIDMode,
		BuildPolicy:          BuildPolicy{Mode: BuildMissing},
		MaxParallelChecks:    DefaultMaxParallelChecks,
	}
}

// Consumer is the content of a keelfile: the requirements of the virtual root.
type Consumer struct {
	Requires      []Requirement
	BuildRequires []Requirement
	Options       []OptionAssignment
}
