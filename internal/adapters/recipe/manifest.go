package recipe

import (
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Manifest is the content of a recipe.yaml file.
type Manifest struct {
	Name           string               `yaml:"name"`
	Version        string               `yaml:"version"`
	Settings       []string             `yaml:"settings"`
	Options        map[string]OptionDTO `yaml:"options"`
	DefaultOptions map[string]string    `yaml:"default_options"`
	Requires       []RequireDTO         `yaml:"requires"`
	BuildRequires  []RequireDTO         `yaml:"build_requires"`
	ConfigOptions  []RuleDTO            `yaml:"config_options"`
	Configure      []RuleDTO            `yaml:"configure"`
	PackageID      PackageIDDTO         `yaml:"package_id"`
	Compatibility  CompatibilityDTO     `yaml:"compatibility"`
	PackageInfo    PackageInfoDTO       `yaml:"package_info"`
}

// OptionDTO declares an option. A values list containing ANY accepts anything.
type OptionDTO struct {
	Values  []string `yaml:"values"`
	Default *string  `yaml:"default"`
}

// RequireDTO is a requirement, written as a reference or as a mapping with
// flags and an optional condition.
type RequireDTO struct {
	Ref      string            `yaml:"ref"`
	Private  bool              `yaml:"private"`
	Override bool              `yaml:"override"`
	When     map[string]string `yaml:"when"`
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

// RuleDTO edits the configuration when every condition in When holds.
// Conditions address settings by path and options as "options.<name>".
type RuleDTO struct {
	When           map[string]string `yaml:"when"`
	RemoveSettings []string          `yaml:"remove_settings"`
	RemoveOptions  []string          `yaml:"remove_options"`
	SetOptions     map[string]string `yaml:"set_options"`
	Invalid        string            `yaml:"invalid"`
}

// PackageIDDTO edits the identity input of the package.
type PackageIDDTO struct {
	HeaderOnly    bool              `yaml:"header_only"`
	EraseSettings []string          `yaml:"erase_settings"`
	AnySettings   []string          `yaml:"any_settings"`
	EraseOptions  []string          `yaml:"erase_options"`
	RequiresMode  string            `yaml:"requires_mode"`
	Requires      map[string]string `yaml:"requires"`
}

// CompatibilityDTO lists binaries the recipe accepts as substitutes.
type CompatibilityDTO struct {
	Cppstd   bool         `yaml:"cppstd"`
	Variants []VariantDTO `yaml:"variants"`
}

// VariantDTO overrides identity values of the requested configuration.
type VariantDTO struct {
	Settings map[string]string `yaml:"settings"`
	Options  map[string]string `yaml:"options"`
}

// ComponentDTO is the build and link metadata of a package or component.
type ComponentDTO struct {
	Name        string   `yaml:"name"`
	IncludeDirs []string `yaml:"include_dirs"`
	LibDirs     []string `yaml:"lib_dirs"`
	Libs        []string `yaml:"libs"`
	SystemLibs  []string `yaml:"system_libs"`
	Defines     []string `yaml:"defines"`
	CFlags      []string `yaml:"cflags"`
	CxxFlags    []string `yaml:"cxxflags"`
	LinkFlags   []string `yaml:"link_flags"`
	Requires    []string `yaml:"requires"`
}

// PackageInfoDTO is the package level metadata plus its components.
type PackageInfoDTO struct {
	ComponentDTO `yaml:",inline"`
	Components   []ComponentDTO `yaml:"components"`
}
