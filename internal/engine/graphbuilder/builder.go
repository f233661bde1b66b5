// Package graphbuilder expands the requirements of a consumer into a resolved
// dependency graph.
package graphbuilder

import (
	"context"
	"errors"
	"strconv"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultMaxRestarts bounds the number of times a resolution starts over
// after tightening a version constraint.
const DefaultMaxRestarts = 64

// Policy tunes a resolution.
type Policy struct {
	// ShareBuildRequires lets a build-requirement reuse an identical HOST node.
	ShareBuildRequires bool
	// MaxParallel bounds concurrent oracle prefetches. Zero means unbounded.
	MaxParallel int
	// MaxRestarts overrides DefaultMaxRestarts when positive.
	MaxRestarts int
}

// Request is the input of one resolution.
type Request struct {
	Consumer    *domain.Consumer
	HostProfile *domain.Profile
	// BuildProfile configures BUILD context nodes. Nil reuses HostProfile.
	BuildProfile *domain.Profile
	Schema       *domain.SettingsSchema
	// Options are command line assignments. They take precedence over the
	// consumer and the host profile.
	Options []domain.OptionAssignment
	// Pins fixes packages to locked references, per context.
	Pins   map[domain.NodeKey]domain.Reference
	Policy Policy
}

// Builder resolves dependency graphs against an oracle.
type Builder struct {
	oracle ports.Oracle
	logger ports.Logger
}

// New creates a Builder.
func New(oracle ports.Oracle, logger ports.Logger) *Builder {
	return &Builder{oracle: oracle, logger: logger}
}

// Build resolves the graph of req. Oracle answers are memoized for the whole
// call, so restarts only re-run the recipe hooks.
func (b *Builder) Build(ctx context.Context, req Request) (*domain.Graph, error) {
	if req.Consumer == nil {
		req.Consumer = &domain.Consumer{}
	}
	if req.HostProfile == nil {
		req.HostProfile = &domain.Profile{}
	}
	if req.BuildProfile == nil {
		req.BuildProfile = req.HostProfile
	}
	host, err := req.HostProfile.SettingsFor(req.Schema)
	if err != nil {
		return nil, zerr.With(err, "profile", req.HostProfile.Name)
	}
	build, err := req.BuildProfile.SettingsFor(req.Schema)
	if err != nil {
		return nil, zerr.With(err, "profile", req.BuildProfile.Name)
	}

	maxRestarts := req.Policy.MaxRestarts
	if maxRestarts <= 0 {
		maxRestarts = DefaultMaxRestarts
	}

	fetch := newPrefetcher(b.oracle, req.Policy.MaxParallel)
	defer fetch.wait()

	constraints := make(map[domain.NodeKey][]constraint)
	for attempt := 0; ; attempt++ {
		r := newResolution(b, req, fetch, constraints, host, build)
		g, err := r.run(ctx)

		var restart *restartError
		if errors.As(err, &restart) {
			if attempt >= maxRestarts {
				return nil, zerr.With(zerr.Wrap(domain.ErrResolutionAborted, "too many restarts"), "restarts", strconv.Itoa(attempt))
			}
			debug(ctx, "restarting resolution: "+restart.Error())
			constraints[restart.key] = append(constraints[restart.key], restart.constraint)
			continue
		}
		if err != nil {
			return nil, err
		}
		if err := g.Validate(); err != nil {
			return nil, err
		}
		return g, nil
	}
}

// constraint is an extra requirement on a package learned from a conflict.
// A forced constraint comes from an override and replaces all others.
type constraint struct {
	ref    domain.Reference
	forced bool
}

// restartError asks the builder to start over with one more constraint.
type restartError struct {
	key        domain.NodeKey
	constraint constraint
}

func (e *restartError) Error() string {
	kind := "constraint"
	if e.constraint.forced {
		kind = "override"
	}
	return kind + " " + e.constraint.ref.String() + " on " + e.key.Package + " (" + e.key.Context.String() + ")"
}

func debug(ctx context.Context, msg string) {
	if v, ok := ports.VertexFromContext(ctx); ok {
		v.Log(domain.LogLevelDebug, msg)
	}
}

func warn(ctx context.Context, logger ports.Logger, msg string) {
	if v, ok := ports.VertexFromContext(ctx); ok {
		v.Log(domain.LogLevelWarn, msg)
		return
	}
	if logger != nil {
		logger.Warn(msg)
	}
}
