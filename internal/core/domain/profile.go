package domain

import (
	"slices"
	"strings"
)

// ToolRequire injects build-requirements into every node matching Pattern.
type ToolRequire struct {
	Pattern string
	Refs    []Reference
}

// Profile is the configuration of one context: settings values, option
// assignments and implicit build-requirements.
type Profile struct {
	Name          string
	Settings      []KeyValue
	Options       []OptionAssignment
	BuildRequires []ToolRequire
}

// Setting returns the profile's value for a setting path.
func (p *Profile) Setting(key string) (string, bool) {
	for _, kv := range p.Settings {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// SetSetting assigns a setting. Changing a parent setting drops the
// sub-settings that were configured for the previous parent value.
func (p *Profile) SetSetting(key, value string) {
	if old, ok := p.Setting(key); ok && old != value {
		prefix := key + "."
		p.Settings = slices.DeleteFunc(p.Settings, func(kv KeyValue) bool {
			return strings.HasPrefix(kv.Key, prefix)
		})
	}
	for i := range p.Settings {
		if p.Settings[i].Key == key {
			p.Settings[i].Value = value
			return
		}
	}
	p.Settings = append(p.Settings, KeyValue{Key: key, Value: value})
}

// Merge composes other on top of p and returns the result. Settings and
// options of other win; build-requirements accumulate, replacing a tool of
// the same package for the same pattern.
func (p *Profile) Merge(other *Profile) *Profile {
	out := p.Copy()
	if other == nil {
		return out
	}
	if other.Name != "" {
		out.Name = other.Name
	}
	for _, kv := range other.Settings {
		out.SetSetting(kv.Key, kv.Value)
	}
	for _, a := range other.Options {
		out.Options = slices.DeleteFunc(out.Options, func(existing OptionAssignment) bool {
			return existing.Pattern == a.Pattern && existing.Name == a.Name
		})
		out.Options = append(out.Options, a)
	}
	for _, tr := range other.BuildRequires {
		idx := slices.IndexFunc(out.BuildRequires, func(existing ToolRequire) bool {
			return existing.Pattern == tr.Pattern
		})
		if idx < 0 {
			out.BuildRequires = append(out.BuildRequires, ToolRequire{Pattern: tr.Pattern, Refs: slices.Clone(tr.Refs)})
			continue
		}
		for _, ref := range tr.Refs {
			refs := slices.DeleteFunc(out.BuildRequires[idx].Refs, func(existing Reference) bool {
				return existing.SamePackage(ref)
			})
			out.BuildRequires[idx].Refs = append(refs, ref)
		}
	}
	return out
}

// Copy returns a deep copy.
func (p *Profile) Copy() *Profile {
	out := &Profile{
		Name:     p.Name,
		Settings: slices.Clone(p.Settings),
		Options:  slices.Clone(p.Options),
	}
	for _, tr := range p.BuildRequires {
		out.BuildRequires = append(out.BuildRequires, ToolRequire{Pattern: tr.Pattern, Refs: slices.Clone(tr.Refs)})
	}
	return out
}

// SettingsFor validates the profile settings against a schema. Parents are
// assigned before their sub-settings.
func (p *Profile) SettingsFor(schema *SettingsSchema) (*Settings, error) {
	ordered := slices.Clone(p.Settings)
	slices.SortStableFunc(ordered, func(a, b KeyValue) int {
		return strings.Count(a.Key, ".") - strings.Count(b.Key, ".")
	})
	s := NewSettings(schema)
	for _, kv := range ordered {
		if err := s.Set(kv.Key, kv.Value); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ToolsFor returns the implicit build-requirements of the profile for ref, in
// declaration order and without duplicated packages.
func (p *Profile) ToolsFor(ref Reference) []Reference {
	var tools []Reference
	for _, tr := range p.BuildRequires {
		if !ref.Matches(tr.Pattern) {
			continue
		}
		for _, tool := range tr.Refs {
			if slices.ContainsFunc(tools, tool.SamePackage) {
				continue
			}
			tools = append(tools, tool)
		}
	}
	return tools
}
