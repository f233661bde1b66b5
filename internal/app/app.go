// Package app implements the application layer for keel.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/keel/internal/engine/graphbuilder"
	"go.trai.ch/keel/internal/engine/identity"
	"go.trai.ch/keel/internal/engine/toolchain"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	builder      *graphbuilder.Builder
	computer     *identity.Computer
	analyzer     *identity.Analyzer
	registry     *toolchain.Registry
	locks        ports.LockfileStore
	telemetry    ports.Telemetry
	logger       ports.Logger
	home         string
	out          io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	builder *graphbuilder.Builder,
	computer *identity.Computer,
	analyzer *identity.Analyzer,
	registry *toolchain.Registry,
	locks ports.LockfileStore,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		builder:      builder,
		computer:     computer,
		analyzer:     analyzer,
		registry:     registry,
		locks:        locks,
		telemetry:    telemetry,
		logger:       log,
		home:         domain.HomeDir(),
		out:          os.Stdout,
	}
}

// WithHome overrides the keel home directory.
func (a *App) WithHome(home string) *App {
	a.home = home
	return a
}

// WithOutput redirects command output, stdout by default.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// UseJSONLogs switches the logger to JSON output when it supports it.
func (a *App) UseJSONLogs(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(enable bool) }); ok {
		l.SetJSON(enable)
	}
}

// ResolveOptions selects what to resolve and how.
type ResolveOptions struct {
	// Keelfile is the consumer manifest. Ignored when Requires is set.
	Keelfile string
	// Requires replaces the keelfile with explicit requirements.
	Requires []string
	// HostProfile is a profile path or name. Empty detects the running machine.
	HostProfile string
	// BuildProfile configures tools. Empty reuses the host profile.
	BuildProfile string
	// Settings are "key=value" overrides on the host profile.
	Settings []string
	// Options are "pkg:option=value" assignments. They win over the keelfile
	// and the profile.
	Options []string
	// Build overrides the configured build policy.
	Build []string
	// Lockfile pins every locked package when set.
	Lockfile string
	// Schema is a settings schema path. Empty uses the home override or the built-in schema.
	Schema string
}

// Resolve runs every phase of a resolution: graph expansion, package ids,
// binary analysis and package metadata.
//
//nolint:cyclop // orchestration function
func (a *App) Resolve(ctx context.Context, opts ResolveOptions) (*domain.Graph, error) {
	// 1. Load the configuration
	cfg, err := a.configLoader.LoadConfig(a.home)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	schema, err := a.configLoader.LoadSchema(a.schemaPath(opts.Schema))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load settings schema")
	}

	host, build, err := a.profiles(opts)
	if err != nil {
		return nil, err
	}

	consumer, err := a.consumer(opts)
	if err != nil {
		return nil, err
	}

	options, err := parseOptions(opts.Options)
	if err != nil {
		return nil, err
	}

	pins, err := a.pins(opts.Lockfile)
	if err != nil {
		return nil, err
	}

	policy := cfg.BuildPolicy
	if len(opts.Build) > 0 {
		policy, err = domain.ParseBuildPolicy(strings.Join(opts.Build, ","))
		if err != nil {
			return nil, err
		}
	}

	// 2. Expand the graph
	var g *domain.Graph
	err = a.phase(ctx, "resolve graph", func(ctx context.Context) error {
		g, err = a.builder.Build(ctx, graphbuilder.Request{
			Consumer:     consumer,
			HostProfile:  host,
			BuildProfile: build,
			Schema:       schema,
			Options:      options,
			Pins:         pins,
			Policy: graphbuilder.Policy{
				ShareBuildRequires: cfg.ShareBuildRequires,
				MaxParallel:        cfg.MaxParallelChecks,
			},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	// 3. Compute package ids
	err = a.phase(ctx, "compute package ids", func(ctx context.Context) error {
		return a.computer.Compute(ctx, g, cfg.DefaultPackageIDMode)
	})
	if err != nil {
		return nil, err
	}

	// 4. Look up binaries
	err = a.phase(ctx, "analyze binaries", func(ctx context.Context) error {
		return a.analyzer.Analyze(ctx, g, policy, cfg.MaxParallelChecks)
	})
	if err != nil {
		return nil, err
	}

	// 5. Collect package metadata
	err = a.phase(ctx, "package info", func(ctx context.Context) error {
		return collectPackageInfo(ctx, g)
	})
	if err != nil {
		return nil, err
	}

	return g, nil
}

// phase records fn as one telemetry vertex.
func (a *App) phase(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, vertex := a.telemetry.Record(ctx, name)
	err := fn(ctx)
	vertex.Complete(err)
	return err
}

func (a *App) schemaPath(path string) string {
	if path != "" {
		return path
	}
	override := filepath.Join(a.home, domain.SettingsFileName)
	if _, err := os.Stat(override); err == nil {
		return override
	}
	return ""
}

// profiles returns the host and build profiles. Command line settings only
// apply to the host profile.
func (a *App) profiles(opts ResolveOptions) (*domain.Profile, *domain.Profile, error) {
	host, err := a.profile(opts.HostProfile)
	if err != nil {
		return nil, nil, err
	}

	build := host.Copy()
	if opts.BuildProfile != "" {
		build, err = a.profile(opts.BuildProfile)
		if err != nil {
			return nil, nil, err
		}
	}

	for _, s := range opts.Settings {
		key, value, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, nil, zerr.With(zerr.Wrap(domain.ErrInvalidValue, "malformed setting "+s), "setting", s)
		}
		host.SetSetting(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return host, build, nil
}

func (a *App) profile(name string) (*domain.Profile, error) {
	if name == "" {
		return a.configLoader.DetectProfile(), nil
	}
	p, err := a.configLoader.LoadProfile(domain.ProfilePath(a.home, name))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load profile")
	}
	return p, nil
}

func (a *App) consumer(opts ResolveOptions) (*domain.Consumer, error) {
	var consumer *domain.Consumer
	if len(opts.Requires) > 0 {
		consumer = &domain.Consumer{}
		for _, text := range opts.Requires {
			req, err := domain.ParseRequirement(text)
			if err != nil {
				return nil, err
			}
			consumer.Requires = append(consumer.Requires, req)
		}
	} else {
		path := opts.Keelfile
		if path == "" {
			path = domain.ConsumerFileName
		}
		var err error
		consumer, err = a.configLoader.LoadConsumer(path)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to load keelfile")
		}
	}

	return consumer, nil
}

func parseOptions(texts []string) ([]domain.OptionAssignment, error) {
	out := make([]domain.OptionAssignment, 0, len(texts))
	for _, text := range texts {
		assignment, err := domain.ParseOptionAssignment(text)
		if err != nil {
			return nil, err
		}
		out = append(out, assignment)
	}
	return out, nil
}

func (a *App) pins(path string) (map[domain.NodeKey]domain.Reference, error) {
	if path == "" {
		return nil, nil
	}
	lock, err := a.locks.Load(path)
	if err != nil {
		return nil, err
	}
	if lock == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, "lockfile not found"), "path", path)
	}
	return lock.Pins()
}

// collectPackageInfo runs the package_info hook of every needed node,
// dependencies first, and validates component requirements against the
// direct dependencies.
func collectPackageInfo(ctx context.Context, g *domain.Graph) error {
	for _, n := range g.OrderedIterate() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if n.Virtual || n.BinaryStatus == domain.BinarySkip {
			continue
		}

		info := domain.NewCppInfo(n.Ref.Name)
		if hook, ok := n.Instance.(ports.PackageInfoHook); ok {
			if err := hook.PackageInfo(info); err != nil {
				ref := n.Ref.String()
				return zerr.With(zerr.With(zerr.Wrap(fmt.Errorf("%w: %w", err, domain.ErrRecipeHook), ref+": package_info"),
					"reference", ref),
					"hook", "package_info")
			}
		}

		deps := make(map[string]*domain.CppInfo)
		for _, e := range n.Dependencies {
			if e.Require.Build || e.Require.Override || e.Dst.CppInfo == nil {
				continue
			}
			deps[e.Dst.Ref.Name] = e.Dst.CppInfo
		}
		if err := info.Validate(deps); err != nil {
			return zerr.With(err, "reference", n.Ref.String())
		}
		n.CppInfo = info
	}
	return nil
}
