package domain

import (
	"path"
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

var segmentPattern = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_+.-]{1,50}$`)

// Reference identifies a recipe as name/version@user/channel#revision.
// The zero value is not a valid reference. References are comparable and can
// be used directly as map keys.
type Reference struct {
	Name     string
	Version  string
	User     string
	Channel  string
	Revision string
}

// ParseReference parses the canonical text form of a reference.
// Name and version are mandatory, user and channel must appear together and
// the revision is only accepted after '#'.
func ParseReference(text string) (Reference, error) {
	raw := strings.TrimSpace(text)
	invalid := func(reason string) error {
		return zerr.With(zerr.With(zerr.Wrap(ErrInvalidReference, text+": "+reason), "reference", text), "reason", reason)
	}

	var ref Reference
	body := raw
	if idx := strings.Index(body, "#"); idx >= 0 {
		ref.Revision = body[idx+1:]
		body = body[:idx]
		if ref.Revision == "" {
			return Reference{}, invalid("empty revision")
		}
		if strings.ContainsAny(ref.Revision, "/@#: ") {
			return Reference{}, invalid("malformed revision")
		}
	}

	if idx := strings.Index(body, "@"); idx >= 0 {
		userChannel := body[idx+1:]
		body = body[:idx]
		user, channel, ok := strings.Cut(userChannel, "/")
		if !ok || user == "" || channel == "" {
			return Reference{}, invalid("user and channel must be given together")
		}
		if !segmentPattern.MatchString(user) || !segmentPattern.MatchString(channel) {
			return Reference{}, invalid("malformed user or channel")
		}
		ref.User, ref.Channel = user, channel
	}

	name, version, ok := strings.Cut(body, "/")
	if !ok || name == "" || version == "" {
		return Reference{}, invalid("name and version are mandatory")
	}
	if !segmentPattern.MatchString(name) {
		return Reference{}, invalid("malformed name")
	}
	if err := validateVersionText(version); err != "" {
		return Reference{}, invalid(err)
	}
	ref.Name, ref.Version = name, version
	return ref, nil
}

// MustParseReference is like ParseReference but panics on malformed input.
func MustParseReference(text string) Reference {
	ref, err := ParseReference(text)
	if err != nil {
		panic(err)
	}
	return ref
}

func validateVersionText(version string) string {
	if strings.HasPrefix(version, "[") {
		if !strings.HasSuffix(version, "]") {
			return "unterminated version range"
		}
		return ""
	}
	if strings.ContainsAny(version, "/@#: ") {
		return "malformed version"
	}
	if !segmentPattern.MatchString(version) && len(version) != 1 {
		return "malformed version"
	}
	return ""
}

// String returns the canonical text form.
func (r Reference) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	b.WriteString("/")
	b.WriteString(r.Version)
	if r.User != "" {
		b.WriteString("@")
		b.WriteString(r.User)
		b.WriteString("/")
		b.WriteString(r.Channel)
	}
	if r.Revision != "" {
		b.WriteString("#")
		b.WriteString(r.Revision)
	}
	return b.String()
}

// IsZero reports whether the reference is the zero value.
func (r Reference) IsZero() bool {
	return r == Reference{}
}

// IsRange reports whether the version slot holds a version range expression.
func (r Reference) IsRange() bool {
	return strings.HasPrefix(r.Version, "[")
}

// WithRevision returns a copy carrying the given revision.
func (r Reference) WithRevision(revision string) Reference {
	r.Revision = revision
	return r
}

// WithoutRevision returns a copy with the revision cleared.
func (r Reference) WithoutRevision() Reference {
	r.Revision = ""
	return r
}

// WithVersion returns a copy carrying the given version and no revision.
func (r Reference) WithVersion(version string) Reference {
	r.Version = version
	r.Revision = ""
	return r
}

// PackageKey returns the identity used to unify nodes: name@user/channel.
func (r Reference) PackageKey() string {
	if r.User == "" {
		return r.Name
	}
	return r.Name + "@" + r.User + "/" + r.Channel
}

// SamePackage reports whether both references name the same package.
func (r Reference) SamePackage(o Reference) bool {
	return r.Name == o.Name && r.User == o.User && r.Channel == o.Channel
}

// SameRecipe reports whether both references name the same recipe version.
func (r Reference) SameRecipe(o Reference) bool {
	return r.SamePackage(o) && r.Version == o.Version
}

// SameImmutable reports whether both references name the same recipe revision.
func (r Reference) SameImmutable(o Reference) bool {
	return r.SameRecipe(o) && r.Revision == o.Revision
}

// Matches reports whether the reference matches a pattern with '*' wildcards
// per segment. Missing segments match anything, so "zlib" matches every zlib
// version and "*@lasote/*" matches every package of user lasote.
func (r Reference) Matches(pattern string) bool {
	p := parsePattern(pattern)
	return matchSegment(p.Name, r.Name) &&
		matchSegment(p.Version, r.Version) &&
		matchSegment(p.User, r.User) &&
		matchSegment(p.Channel, r.Channel) &&
		matchSegment(p.Revision, r.Revision)
}

// parsePattern splits a pattern the way ParseReference splits a reference but
// without validation; absent segments become "*".
func parsePattern(pattern string) Reference {
	p := Reference{Version: "*", User: "*", Channel: "*", Revision: "*"}
	body := strings.TrimSpace(pattern)
	if before, after, ok := strings.Cut(body, "#"); ok {
		body, p.Revision = before, after
	}
	if before, after, ok := strings.Cut(body, "@"); ok {
		body = before
		user, channel, hasChannel := strings.Cut(after, "/")
		p.User = user
		if hasChannel {
			p.Channel = channel
		}
	}
	name, version, ok := strings.Cut(body, "/")
	p.Name = name
	if ok {
		p.Version = version
	}
	return p
}

func matchSegment(pattern, value string) bool {
	if pattern == "*" || pattern == value {
		return true
	}
	ok, err := path.Match(pattern, value)
	return err == nil && ok
}

// BinaryReference identifies one compiled binary of a recipe.
type BinaryReference struct {
	Ref             Reference
	PackageID       string
	PackageRevision string
}

// String returns ref:package_id[#package_revision].
func (b BinaryReference) String() string {
	s := b.Ref.String() + ":" + b.PackageID
	if b.PackageRevision != "" {
		s += "#" + b.PackageRevision
	}
	return s
}
