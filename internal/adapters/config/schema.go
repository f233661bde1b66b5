package config

import (
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// ConfigFile represents the structure of keel.yaml.
type ConfigFile struct {
	PackageIDMode      string `yaml:"package_id_mode"`
	ShareBuildRequires bool   `yaml:"share_build_requires"`
	Build              string `yaml:"build"`
	MaxParallelChecks  int    `yaml:"max_parallel_checks"`
}

// ProfileFile represents a YAML or TOML profile.
type ProfileFile struct {
	Include       []string            `yaml:"include" toml:"include"`
	Settings      map[string]string   `yaml:"settings" toml:"settings"`
	Options       map[string]string   `yaml:"options" toml:"options"`
	BuildRequires map[string][]string `yaml:"build_requires" toml:"build_requires"`
}

// Keelfile represents the consumer manifest.
type Keelfile struct {
	Requires      []RequireDTO      `yaml:"requires"`
	BuildRequires []RequireDTO      `yaml:"build_requires"`
	Options       map[string]string `yaml:"options"`
}

// RequireDTO is a requirement written either as a plain reference or as a
// mapping with flags:
//
//	requires:
//	  - zlib/1.2.13
//	  - ref: openssl/[>=3.0 <4]
//	    private: true
type RequireDTO struct {
	Ref      string `yaml:"ref"`
	Private  bool   `yaml:"private"`
	Override bool   `yaml:"override"`
}

// UnmarshalYAML accepts the scalar and the mapping form.
func (r *RequireDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		r.Ref = node.Value
		return nil
	}
	type plain RequireDTO
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	if p.Ref == "" {
		return zerr.With(zerr.New("requirement without ref"), "line", node.Line)
	}
	*r = RequireDTO(p)
	return nil
}
