package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Requirement is one dependency declaration of a recipe.
type Requirement struct {
	// Ref is the required reference; its version may be a range expression.
	Ref Reference
	// Override only repins an existing transitive dependency, it never adds an edge.
	Override bool
	// Private hides the dependency from the consumer's public interface.
	Private bool
	// Build marks a build-time tool requirement.
	Build bool
	// Direct is false for requirements injected by a profile.
	Direct bool
}

// ParseRequirement parses a reference and returns it as a direct requirement.
func ParseRequirement(text string) (Requirement, error) {
	ref, err := ParseReference(text)
	if err != nil {
		return Requirement{}, err
	}
	return Requirement{Ref: ref, Direct: true}, nil
}

// Range parses the version range of the requirement. The boolean is false
// for pinned requirements.
func (r Requirement) Range() (VersionRange, bool, error) {
	if !r.Ref.IsRange() {
		return VersionRange{}, false, nil
	}
	vr, err := ParseVersionRange(r.Ref.Version)
	if err != nil {
		return VersionRange{}, true, zerr.With(err, "requirement", r.Ref.String())
	}
	return vr, true, nil
}

// String renders the requirement with its flags.
func (r Requirement) String() string {
	var flags []string
	if r.Override {
		flags = append(flags, "override")
	}
	if r.Private {
		flags = append(flags, "private")
	}
	if r.Build {
		flags = append(flags, "build")
	}
	if len(flags) == 0 {
		return r.Ref.String()
	}
	return r.Ref.String() + " (" + strings.Join(flags, ", ") + ")"
}

// RequireOption customizes a requirement added through Requirements.Add.
type RequireOption func(*Requirement)

// Override marks the requirement as an override.
func Override() RequireOption {
	return func(r *Requirement) { r.Override = true }
}

// Private marks the requirement as private.
func Private() RequireOption {
	return func(r *Requirement) { r.Private = true }
}

// Requirements is the mutable list a recipe appends to from its
// requirements and build_requirements hooks. The list is owned by the graph
// builder.
type Requirements struct {
	build bool
	items []Requirement
}

// NewRequirements creates an empty list. Entries added to a build list are
// build-requirements.
func NewRequirements(build bool) *Requirements {
	return &Requirements{build: build}
}

// Add parses text and appends it.
func (r *Requirements) Add(text string, opts ...RequireOption) error {
	req, err := ParseRequirement(text)
	if err != nil {
		return err
	}
	for _, opt := range opts {
		opt(&req)
	}
	return r.Append(req)
}

// Append adds a requirement. A package may only be required once per list.
func (r *Requirements) Append(req Requirement) error {
	req.Build = req.Build || r.build
	for _, existing := range r.items {
		if existing.Ref.SamePackage(req.Ref) {
			return zerr.With(zerr.With(zerr.Wrap(ErrDuplicateRequirement, req.Ref.PackageKey()), "existing", existing.Ref.String()),
				"requested", req.Ref.String())
		}
	}
	r.items = append(r.items, req)
	return nil
}

// Has reports whether the list already requires the package.
func (r *Requirements) Has(ref Reference) bool {
	for _, existing := range r.items {
		if existing.Ref.SamePackage(ref) {
			return true
		}
	}
	return false
}

// Items returns the requirements in declaration order.
func (r *Requirements) Items() []Requirement {
	out := make([]Requirement, len(r.items))
	copy(out, r.items)
	return out
}

// Len returns the number of requirements.
func (r *Requirements) Len() int {
	return len(r.items)
}
