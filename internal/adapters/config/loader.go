// Package config provides the configuration loader for keel: the tool
// configuration, settings schemas, profiles and consumer manifests.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader on top of YAML and TOML files.
type Loader struct {
	Logger ports.Logger
	// Probe runs a command and returns its trimmed output. It is used to
	// detect the installed compiler.
	Probe func(name string, args ...string) (string, error)
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, Probe: runProbe}
}

// LoadConfig reads keel.yaml from home. A missing file yields the defaults.
func (l *Loader) LoadConfig(home string) (*domain.Config, error) {
	path := filepath.Join(home, domain.ConfigFileName)
	cfg := domain.DefaultConfig()

	var file ConfigFile
	found, err := readYAML(path, &file)
	if err != nil || !found {
		return cfg, err
	}

	if cfg.DefaultPackageIDMode, err = domain.ParsePackageIDMode(file.PackageIDMode); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	if cfg.BuildPolicy, err = domain.ParseBuildPolicy(file.Build); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	cfg.ShareBuildRequires = file.ShareBuildRequires
	if file.MaxParallelChecks > 0 {
		cfg.MaxParallelChecks = file.MaxParallelChecks
	}
	return cfg, nil
}

// LoadSchema reads a settings schema. An empty path selects the built-in schema.
func (l *Loader) LoadSchema(path string) (*domain.SettingsSchema, error) {
	if path == "" {
		return ParseSchema(defaultSettings)
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, readError(path, err)
	}
	schema, err := ParseSchema(data)
	if err != nil {
		return nil, zerr.With(err, "file", path)
	}
	return schema, nil
}

// LoadConsumer reads a keelfile describing the root requirements.
func (l *Loader) LoadConsumer(path string) (*domain.Consumer, error) {
	var file Keelfile
	found, err := readYAML(path, &file)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, readError(path, fs.ErrNotExist)
	}

	consumer := &domain.Consumer{}
	if consumer.Requires, err = ToRequirements(file.Requires, false); err != nil {
		return nil, zerr.With(err, "file", path)
	}
	if consumer.BuildRequires, err = ToRequirements(file.BuildRequires, true); err != nil {
		return nil, zerr.With(err, "file", path)
	}
	if consumer.Options, err = ToAssignments(file.Options); err != nil {
		return nil, zerr.With(err, "file", path)
	}
	return consumer, nil
}

// readYAML decodes path into out. found is false when the file does not exist.
func readYAML(path string, out any) (bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, readError(path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return true, parseError(path, err)
	}
	return true, nil
}

func readError(path string, err error) error {
	return zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, path+": "+err.Error()), "path", path)
}

func parseError(path string, err error) error {
	return zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, path+": "+err.Error()), "path", path)
}

// ToRequirements converts requirement DTOs into domain requirements.
func ToRequirements(dtos []RequireDTO, build bool) ([]domain.Requirement, error) {
	reqs := domain.NewRequirements(build)
	for _, dto := range dtos {
		req, err := domain.ParseRequirement(dto.Ref)
		if err != nil {
			return nil, err
		}
		req.Private = dto.Private
		req.Override = dto.Override
		if err := reqs.Append(req); err != nil {
			return nil, err
		}
	}
	return reqs.Items(), nil
}

// ToAssignments converts an option map into assignments sorted by key. Keys
// are "option" or "pattern:option".
func ToAssignments(options map[string]string) ([]domain.OptionAssignment, error) {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]domain.OptionAssignment, 0, len(keys))
	for _, k := range keys {
		a, err := domain.ParseOptionAssignment(strings.TrimSpace(k) + "=" + options[k])
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
