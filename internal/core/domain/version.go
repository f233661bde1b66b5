package domain

import (
	"strconv"
	"strings"

	mm "github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// Version is a recipe version. Versions that parse as semantic versions are
// ordered semantically; anything else falls back to lexicographic order.
//
// This is a thin wrapper around github.com/Masterminds/semver/v3.
type Version struct {
	raw string
	sem *mm.Version
}

// ParseVersion never fails: non-semver strings are kept as opaque versions.
func ParseVersion(raw string) Version {
	v := Version{raw: raw}
	if sem, err := mm.NewVersion(raw); err == nil {
		v.sem = sem
	}
	return v
}

// String returns the version as it was written.
func (v Version) String() string {
	return v.raw
}

// IsSemver reports whether the version parsed as a semantic version.
func (v Version) IsSemver() bool {
	return v.sem != nil
}

// Major returns the major component, or the raw text for non-semver versions.
func (v Version) Major() string {
	if v.sem == nil {
		return v.raw
	}
	return strconv.FormatUint(v.sem.Major(), 10)
}

// Compare returns -1, 0 or 1. The order is total: semantic versions sort
// above opaque ones, equal semantic versions fall back to their raw text.
func (v Version) Compare(o Version) int {
	switch {
	case v.sem != nil && o.sem != nil:
		if c := v.sem.Compare(o.sem); c != 0 {
			return c
		}
	case v.sem != nil:
		return 1
	case o.sem != nil:
		return -1
	}
	return strings.Compare(v.raw, o.raw)
}

// VersionRange is a version range expression such as "[>=1.2 <2.0]".
//
// Examples:
// - "[>=1.2,<2.0]"
// - "[~1.4]"
// - "[^1.0 || >=3.0, include_prerelease=True]"
type VersionRange struct {
	raw               string
	constraint        *mm.Constraints
	includePrerelease bool
}

// ParseVersionRange parses a bracketed or bare range expression. Comma
// separated terms are ANDed; key=value terms are options.
func ParseVersionRange(expr string) (VersionRange, error) {
	body := strings.TrimSpace(expr)
	body = strings.TrimPrefix(body, "[")
	body = strings.TrimSuffix(body, "]")

	r := VersionRange{raw: expr}
	terms := make([]string, 0, 2)
	for _, term := range strings.Split(body, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if key, value, ok := strings.Cut(term, "="); ok && isOptionKey(key) {
			switch strings.TrimSpace(key) {
			case "include_prerelease":
				r.includePrerelease = strings.EqualFold(strings.TrimSpace(value), "true")
			case "loose":
				// Masterminds is always loose.
			default:
				return VersionRange{}, zerr.With(zerr.With(zerr.Wrap(ErrInvalidVersionRange, "unknown option "+key), "range", expr), "option", key)
			}
			continue
		}
		terms = append(terms, term)
	}
	constraint := strings.Join(terms, " ")
	if constraint == "" {
		constraint = "*"
	}
	c, err := mm.NewConstraint(constraint)
	if err != nil {
		return VersionRange{}, zerr.With(zerr.Wrap(ErrInvalidVersionRange, expr+": "+err.Error()), "range", expr)
	}
	r.constraint = c
	return r, nil
}

func isOptionKey(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	c := key[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

// String returns the range as written.
func (r VersionRange) String() string {
	return r.raw
}

// Contains reports whether v satisfies the range. Opaque versions never do.
func (r VersionRange) Contains(v Version) bool {
	if r.constraint == nil || v.sem == nil {
		return false
	}
	if v.sem.Prerelease() != "" && r.includePrerelease {
		release := mm.New(v.sem.Major(), v.sem.Minor(), v.sem.Patch(), "", "")
		return r.constraint.Check(release)
	}
	return r.constraint.Check(v.sem)
}

// Best returns the highest candidate satisfying the range.
// If multiple versions compare equal, the first encountered wins.
func (r VersionRange) Best(candidates []Version) (Version, bool) {
	var best Version
	found := false
	for _, candidate := range candidates {
		if !r.Contains(candidate) {
			continue
		}
		if !found || candidate.Compare(best) > 0 {
			best = candidate
			found = true
		}
	}
	return best, found
}
