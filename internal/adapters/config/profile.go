package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// LoadProfile reads a profile. Files ending in .toml are decoded as TOML,
// everything else as YAML. Included profiles are merged in order, then the
// profile itself is applied on top.
func (l *Loader) LoadProfile(path string) (*domain.Profile, error) {
	return l.loadProfile(path, nil)
}

func (l *Loader) loadProfile(path string, stack []string) (*domain.Profile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, readError(path, err)
	}
	if slices.Contains(stack, abs) {
		chain := strings.Join(append(stack, abs), " -> ")
		return nil, zerr.With(zerr.Wrap(domain.ErrIncludeLoop, chain), "profile", path)
	}
	stack = append(stack, abs)

	file, err := readProfileFile(abs)
	if err != nil {
		return nil, err
	}

	merged := &domain.Profile{}
	for _, include := range file.Include {
		if !filepath.IsAbs(include) {
			include = filepath.Join(filepath.Dir(abs), include)
		}
		base, err := l.loadProfile(include, stack)
		if err != nil {
			return nil, zerr.With(err, "included_from", path)
		}
		merged = merged.Merge(base)
	}

	own, err := profileFromFile(file)
	if err != nil {
		return nil, zerr.With(err, "profile", path)
	}
	own.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return merged.Merge(own), nil
}

func readProfileFile(path string) (*ProfileFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, readError(path, err)
	}

	var file ProfileFile
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &file); err != nil {
			return nil, parseError(path, err)
		}
		return &file, nil
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, parseError(path, err)
	}
	return &file, nil
}

func profileFromFile(file *ProfileFile) (*domain.Profile, error) {
	p := &domain.Profile{}

	keys := make([]string, 0, len(file.Settings))
	for k := range file.Settings {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		p.SetSetting(k, file.Settings[k])
	}

	options, err := ToAssignments(file.Options)
	if err != nil {
		return nil, err
	}
	p.Options = options

	patterns := make([]string, 0, len(file.BuildRequires))
	for pattern := range file.BuildRequires {
		patterns = append(patterns, pattern)
	}
	slices.Sort(patterns)
	for _, pattern := range patterns {
		tr := domain.ToolRequire{Pattern: pattern}
		for _, text := range file.BuildRequires[pattern] {
			ref, err := domain.ParseReference(text)
			if err != nil {
				return nil, zerr.With(err, "pattern", pattern)
			}
			tr.Refs = append(tr.Refs, ref)
		}
		p.BuildRequires = append(p.BuildRequires, tr)
	}
	return p, nil
}
