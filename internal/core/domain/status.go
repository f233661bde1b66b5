package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Context is the machine a node's artifact runs on.
type Context uint8

const (
	// ContextHost is the machine the final artifacts run on.
	ContextHost Context = iota
	// ContextBuild is the machine running build tools.
	ContextBuild
)

// String returns "host" or "build".
func (c Context) String() string {
	if c == ContextBuild {
		return "build"
	}
	return "host"
}

// ParseContext is the inverse of Context.String.
func ParseContext(s string) (Context, error) {
	switch strings.ToLower(s) {
	case "host", "":
		return ContextHost, nil
	case "build":
		return ContextBuild, nil
	default:
		return ContextHost, zerr.With(zerr.Wrap(ErrInvalidValue, "context "+s), "context", s)
	}
}

// NodeState tracks a node through graph expansion.
type NodeState uint8

const (
	// NodePending means the node was created but not expanded.
	NodePending NodeState = iota
	// NodeExpanding means the recipe hooks are running.
	NodeExpanding
	// NodeResolved means the node and its requirements are known.
	NodeResolved
	// NodeError is terminal: expansion failed.
	NodeError
)

// String returns the lower-case state name.
func (s NodeState) String() string {
	switch s {
	case NodeExpanding:
		return "expanding"
	case NodeResolved:
		return "resolved"
	case NodeError:
		return "error"
	default:
		return "pending"
	}
}

// BinaryStatus tells what must happen to obtain a node's binary.
type BinaryStatus string

const (
	// BinaryUnknown is the status before binary analysis, and of the virtual root.
	BinaryUnknown BinaryStatus = ""
	// BinaryCache means the binary is already in the local cache.
	BinaryCache BinaryStatus = "Cache"
	// BinaryDownload means the binary is available from the repository.
	BinaryDownload BinaryStatus = "Download"
	// BinaryBuild means the binary must be built from sources.
	BinaryBuild BinaryStatus = "Build"
	// BinaryMissing means no binary exists and the policy forbids building.
	BinaryMissing BinaryStatus = "Missing"
	// BinarySkip means the binary is not needed for this resolution.
	BinarySkip BinaryStatus = "Skip"
)

// BuildMode selects when packages are built from sources.
type BuildMode uint8

const (
	// BuildMissing builds packages without an available binary.
	BuildMissing BuildMode = iota
	// BuildNever never builds; missing binaries are reported.
	BuildNever
	// BuildAlways builds every package.
	BuildAlways
)

// BuildPolicy decides whether a node may or must be built.
type BuildPolicy struct {
	Mode BuildMode
	// Patterns force a build for matching references, on top of Mode.
	Patterns []string
}

// ParseBuildPolicy accepts "missing", "never", "always" or a comma separated
// list of reference patterns. With patterns only the matching packages are
// built; every other binary must already exist.
func ParseBuildPolicy(s string) (BuildPolicy, error) {
	switch strings.TrimSpace(s) {
	case "", "missing":
		return BuildPolicy{Mode: BuildMissing}, nil
	case "never":
		return BuildPolicy{Mode: BuildNever}, nil
	case "always", "*":
		return BuildPolicy{Mode: BuildAlways}, nil
	}
	var patterns []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	if len(patterns) == 0 {
		return BuildPolicy{}, zerr.With(zerr.Wrap(ErrUnknownBuildPolicy, s), "policy", s)
	}
	return BuildPolicy{Mode: BuildNever, Patterns: patterns}, nil
}

// Forces reports whether ref must be built regardless of available binaries.
func (p BuildPolicy) Forces(ref Reference) bool {
	if p.Mode == BuildAlways {
		return true
	}
	for _, pattern := range p.Patterns {
		if ref.Matches(pattern) {
			return true
		}
	}
	return false
}

// AllowsMissing reports whether a missing binary may be built.
func (p BuildPolicy) AllowsMissing() bool {
	return p.Mode != BuildNever
}

// Deferred is the tagged result of a recipe's configuration check: either
// OK, or a failure whose reason is only reported if the node has to be built.
type Deferred struct {
	failed bool
	reason string
}

// DeferFailure records a configuration failure for later.
func DeferFailure(reason string) Deferred {
	return Deferred{failed: true, reason: reason}
}

// Failed reports whether a failure was deferred.
func (d Deferred) Failed() bool {
	return d.failed
}

// Reason returns the deferred failure message.
func (d Deferred) Reason() string {
	return d.reason
}

// Err materializes the deferred failure for ref, nil when OK.
func (d Deferred) Err(ref Reference) error {
	if !d.failed {
		return nil
	}
	return zerr.With(zerr.Wrap(ErrInvalidConfiguration, ref.String()+": "+d.reason), "reference", ref.String())
}
