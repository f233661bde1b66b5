package domain

import (
	"crypto/sha1" //nolint:gosec // package ids are sha1 digests by definition
	"encoding/hex"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// AnyInfoValue erases the distinction between values of a setting or option
// in the identity of a package.
const AnyInfoValue = "any"

// PackageIDMode controls how a dependency contributes to its consumer's package id.
type PackageIDMode string

const (
	// UnrelatedMode ignores the dependency.
	UnrelatedMode PackageIDMode = "unrelated_mode"
	// SemverMode keeps the name and the major version.
	SemverMode PackageIDMode = "semver_mode"
	// FullVersionMode keeps the full reference without revision.
	FullVersionMode PackageIDMode = "full_version_mode"
	// FullPackageMode keeps the full reference and the dependency's package id.
	FullPackageMode PackageIDMode = "full_package_mode"
	// RecipeRevisionMode also keeps the dependency's recipe revision.
	RecipeRevisionMode PackageIDMode = "recipe_revision_mode"
)

// DefaultPackageIDMode is used when neither the configuration nor the recipe
// selects a mode.
const DefaultPackageIDMode = FullPackageMode

// ParsePackageIDMode validates a mode name.
func ParsePackageIDMode(s string) (PackageIDMode, error) {
	switch m := PackageIDMode(s); m {
	case UnrelatedMode, SemverMode, FullVersionMode, FullPackageMode, RecipeRevisionMode:
		return m, nil
	case "":
		return DefaultPackageIDMode, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownPackageIDMode, s), "mode", s)
	}
}

// InfoValues is the unvalidated settings or options view handed to the
// package_id hook. Any value may be assigned, including AnyInfoValue.
type InfoValues struct {
	items []KeyValue
}

// NewInfoValues copies the given values.
func NewInfoValues(values []KeyValue) *InfoValues {
	return &InfoValues{items: slices.Clone(values)}
}

// Get returns the value of key and whether it is present.
func (v *InfoValues) Get(key string) (string, bool) {
	for _, kv := range v.items {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Set assigns or adds a value.
func (v *InfoValues) Set(key, value string) {
	for i := range v.items {
		if v.items[i].Key == key {
			v.items[i].Value = value
			return
		}
	}
	v.items = append(v.items, KeyValue{Key: key, Value: value})
}

// Remove erases key and every sub-key below it.
func (v *InfoValues) Remove(key string) {
	prefix := key + "."
	v.items = slices.DeleteFunc(v.items, func(kv KeyValue) bool {
		return kv.Key == key || strings.HasPrefix(kv.Key, prefix)
	})
}

// Clear erases every value.
func (v *InfoValues) Clear() {
	v.items = nil
}

// Values returns the values in insertion order.
func (v *InfoValues) Values() []KeyValue {
	return slices.Clone(v.items)
}

func (v *InfoValues) sorted() []KeyValue {
	out := slices.Clone(v.items)
	slices.SortFunc(out, func(a, b KeyValue) int { return strings.Compare(a.Key, b.Key) })
	return out
}

// RequireInfo is one dependency's contribution to a package id.
type RequireInfo struct {
	Ref       Reference
	PackageID string
	Mode      PackageIDMode
}

// Dumps renders the contribution according to the mode; empty for UnrelatedMode.
func (r RequireInfo) Dumps() string {
	ref := r.Ref.WithoutRevision()
	switch r.Mode {
	case UnrelatedMode:
		return ""
	case SemverMode:
		return ref.WithVersion(ParseVersion(ref.Version).Major() + ".Y.Z").String()
	case FullVersionMode:
		return ref.String()
	case RecipeRevisionMode:
		return r.Ref.String() + ":" + r.PackageID
	default:
		return ref.String() + ":" + r.PackageID
	}
}

// RequireInfos is the mutable dependency view handed to the package_id hook.
type RequireInfos struct {
	items []*RequireInfo
}

// Get returns the contribution of the dependency named name, or nil.
func (r *RequireInfos) Get(name string) *RequireInfo {
	for _, item := range r.items {
		if item.Ref.Name == name {
			return item
		}
	}
	return nil
}

// Remove drops the dependency named name.
func (r *RequireInfos) Remove(name string) {
	r.items = slices.DeleteFunc(r.items, func(item *RequireInfo) bool { return item.Ref.Name == name })
}

// SetMode changes the mode of every dependency.
func (r *RequireInfos) SetMode(mode PackageIDMode) {
	for _, item := range r.items {
		item.Mode = mode
	}
}

// Items returns copies of the contributions.
func (r *RequireInfos) Items() []RequireInfo {
	out := make([]RequireInfo, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out
}

// PackageInfo is the input of a package id: settings, options and the
// identities of direct dependencies.
type PackageInfo struct {
	Settings *InfoValues
	Options  *InfoValues
	Requires *RequireInfos
}

// NewPackageInfo assembles an identity input.
func NewPackageInfo(settings, options []KeyValue, requires []RequireInfo) *PackageInfo {
	infos := &RequireInfos{}
	for _, r := range requires {
		infos.items = append(infos.items, &r)
	}
	return &PackageInfo{
		Settings: NewInfoValues(settings),
		Options:  NewInfoValues(options),
		Requires: infos,
	}
}

// Clone returns a deep copy, used to propose compatible variants.
func (p *PackageInfo) Clone() *PackageInfo {
	return NewPackageInfo(p.Settings.Values(), p.Options.Values(), p.Requires.Items())
}

// Dumps serializes the identity input canonically.
func (p *PackageInfo) Dumps() string {
	var b strings.Builder
	b.WriteString("[settings]\n")
	for _, kv := range p.Settings.sorted() {
		b.WriteString("    " + kv.Key + "=" + kv.Value + "\n")
	}
	b.WriteString("[options]\n")
	for _, kv := range p.Options.sorted() {
		b.WriteString("    " + kv.Key + "=" + kv.Value + "\n")
	}
	b.WriteString("[requires]\n")
	requires := make([]string, 0, len(p.Requires.items))
	for _, r := range p.Requires.items {
		if line := r.Dumps(); line != "" {
			requires = append(requires, line)
		}
	}
	slices.Sort(requires)
	for _, line := range requires {
		b.WriteString("    " + line + "\n")
	}
	return b.String()
}

// PackageID returns the sha1 hex digest of Dumps.
func (p *PackageInfo) PackageID() string {
	sum := sha1.Sum([]byte(p.Dumps())) //nolint:gosec // identity, not security
	return hex.EncodeToString(sum[:])
}
