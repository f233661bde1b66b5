package ports

import "go.trai.ch/keel/internal/core/domain"

// ConfigLoader reads the configuration files of the tool.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// LoadConfig reads keel.yaml from home. A missing file yields the defaults.
	LoadConfig(home string) (*domain.Config, error)

	// LoadSchema reads a settings schema. An empty path selects the built-in schema.
	LoadSchema(path string) (*domain.SettingsSchema, error)

	// LoadProfile reads a YAML or TOML profile, resolving its includes.
	LoadProfile(path string) (*domain.Profile, error)

	// DetectProfile describes the running machine.
	DetectProfile() *domain.Profile

	// LoadConsumer reads a keelfile describing the root requirements.
	LoadConsumer(path string) (*domain.Consumer, error)
}
