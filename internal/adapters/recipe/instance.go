package recipe

import (
	"slices"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/zerr"
)

// Instance is a recipe bound to the settings and options of one node.
type Instance struct {
	recipe   *Recipe
	settings *domain.Settings
	options  *domain.Options
}

var (
	_ ports.RecipeInstance    = (*Instance)(nil)
	_ ports.PackageIDHook     = (*Instance)(nil)
	_ ports.CompatibilityHook = (*Instance)(nil)
	_ ports.PackageInfoHook   = (*Instance)(nil)
	_ ports.CppstdCompatible  = (*Instance)(nil)
)

// Settings returns the settings the instance works on.
func (i *Instance) Settings() *domain.Settings {
	return i.settings
}

// Options returns the options the instance works on.
func (i *Instance) Options() *domain.Options {
	return i.options
}

func (i *Instance) matches(when map[string]string) bool {
	for key, want := range when {
		var got string
		var ok bool
		if name, isOption := conditionKey(key); isOption {
			got, ok = i.options.Get(name)
		} else {
			got, ok = i.settings.Get(key)
		}
		if !ok || got != want {
			return false
		}
	}
	return true
}

func (i *Instance) applyRules(rules []RuleDTO) error {
	for _, rule := range rules {
		if !i.matches(rule.When) {
			continue
		}
		if rule.Invalid != "" {
			return zerr.Wrap(domain.ErrInvalidConfiguration, rule.Invalid)
		}
		for _, path := range rule.RemoveSettings {
			i.settings.Remove(path)
		}
		for _, name := range rule.RemoveOptions {
			if err := i.options.Remove(name); err != nil {
				return err
			}
		}
		for _, name := range sortedKeys(rule.SetOptions) {
			if err := i.options.Set(name, rule.SetOptions[name]); err != nil {
				return err
			}
		}
	}
	return nil
}

// ConfigOptions implements ports.RecipeInstance.
func (i *Instance) ConfigOptions() error {
	return i.applyRules(i.recipe.manifest.ConfigOptions)
}

// Configure implements ports.RecipeInstance.
func (i *Instance) Configure() error {
	return i.applyRules(i.recipe.manifest.Configure)
}

// Requirements implements ports.RecipeInstance.
func (i *Instance) Requirements(reqs *domain.Requirements) error {
	return i.appendRequires(reqs, i.recipe.manifest.Requires)
}

// BuildRequirements implements ports.RecipeInstance.
func (i *Instance) BuildRequirements(reqs *domain.Requirements) error {
	return i.appendRequires(reqs, i.recipe.manifest.BuildRequires)
}

func (i *Instance) appendRequires(reqs *domain.Requirements, dtos []RequireDTO) error {
	for _, dto := range dtos {
		if !i.matches(dto.When) {
			continue
		}
		var opts []domain.RequireOption
		if dto.Private {
			opts = append(opts, domain.Private())
		}
		if dto.Override {
			opts = append(opts, domain.Override())
		}
		if err := reqs.Add(dto.Ref, opts...); err != nil {
			return err
		}
	}
	return nil
}

// PackageID implements ports.PackageIDHook.
func (i *Instance) PackageID(info *domain.PackageInfo) error {
	pid := i.recipe.manifest.PackageID
	if pid.HeaderOnly {
		info.Settings.Clear()
		info.Options.Clear()
		info.Requires.SetMode(domain.UnrelatedMode)
		return nil
	}
	for _, path := range pid.EraseSettings {
		info.Settings.Remove(path)
	}
	for _, path := range pid.AnySettings {
		if _, ok := info.Settings.Get(path); ok {
			info.Settings.Set(path, domain.AnyInfoValue)
		}
	}
	for _, name := range pid.EraseOptions {
		info.Options.Remove(name)
	}
	if i.recipe.allMode != "" {
		info.Requires.SetMode(i.recipe.allMode)
	}
	for _, name := range sortedKeys(i.recipe.modes) {
		if dep := info.Requires.Get(name); dep != nil {
			dep.Mode = i.recipe.modes[name]
		}
	}
	return nil
}

// Compatibility implements ports.CompatibilityHook.
func (i *Instance) Compatibility(info *domain.PackageInfo) ([]*domain.PackageInfo, error) {
	variants := make([]*domain.PackageInfo, 0, len(i.recipe.manifest.Compatibility.Variants))
	for _, v := range i.recipe.manifest.Compatibility.Variants {
		c := info.Clone()
		for _, key := range sortedKeys(v.Settings) {
			c.Settings.Set(key, v.Settings[key])
		}
		for _, key := range sortedKeys(v.Options) {
			c.Options.Set(key, v.Options[key])
		}
		variants = append(variants, c)
	}
	return variants, nil
}

// CppstdCompatible implements ports.CppstdCompatible.
func (i *Instance) CppstdCompatible() bool {
	return i.recipe.manifest.Compatibility.Cppstd
}

// PackageInfo implements ports.PackageInfoHook.
func (i *Instance) PackageInfo(info *domain.CppInfo) error {
	pkg := i.recipe.manifest.PackageInfo
	fillComponent(&info.Root, pkg.ComponentDTO)
	for _, dto := range pkg.Components {
		if dto.Name == "" {
			return zerr.Wrap(domain.ErrComponentRequires, "component without name in "+i.recipe.ref.Name)
		}
		fillComponent(info.Component(dto.Name), dto)
	}
	return nil
}

func fillComponent(c *domain.Component, dto ComponentDTO) {
	c.IncludeDirs = append(c.IncludeDirs, dto.IncludeDirs...)
	c.LibDirs = append(c.LibDirs, dto.LibDirs...)
	c.Libs = append(c.Libs, dto.Libs...)
	c.SystemLibs = append(c.SystemLibs, dto.SystemLibs...)
	c.Defines = append(c.Defines, dto.Defines...)
	c.CFlags = append(c.CFlags, dto.CFlags...)
	c.CxxFlags = append(c.CxxFlags, dto.CxxFlags...)
	c.LinkFlags = append(c.LinkFlags, dto.LinkFlags...)
	c.Requires = slices.Concat(c.Requires, dto.Requires)
}
