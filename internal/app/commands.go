package app

import (
	"context"
	"slices"
	"strings"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/zerr"
)

// Install resolves the graph and checks that every binary can be obtained:
// from the cache, by download, or by building it.
func (a *App) Install(ctx context.Context, opts ResolveOptions) (*domain.Graph, error) {
	defer func() { _ = a.telemetry.Close() }()

	g, err := a.Resolve(ctx, opts)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, n := range g.OrderedIterate() {
		switch n.BinaryStatus {
		case domain.BinaryBuild:
			if err := n.Deferred.Err(n.Ref); err != nil {
				return g, zerr.With(zerr.Wrap(err, "cannot build "+n.Ref.String()), "package_id", n.PackageID())
			}
		case domain.BinaryMissing:
			missing = append(missing, n.BinaryRef().String())
		}
	}

	if err := writeInstall(a.out, g); err != nil {
		return g, err
	}

	if len(missing) > 0 {
		err := zerr.Wrap(domain.ErrMissingBinaries, strings.Join(missing, ", "))
		return g, zerr.With(err, "missing", missing)
	}
	return g, nil
}

// Info resolves the graph and prints every node.
func (a *App) Info(ctx context.Context, opts ResolveOptions) error {
	defer func() { _ = a.telemetry.Close() }()

	g, err := a.Resolve(ctx, opts)
	if err != nil {
		return err
	}
	return writeInfo(a.out, g)
}

// Lock resolves the graph and writes it to path.
func (a *App) Lock(ctx context.Context, opts ResolveOptions, path string) error {
	defer func() { _ = a.telemetry.Close() }()

	g, err := a.Resolve(ctx, opts)
	if err != nil {
		return err
	}
	if path == "" {
		path = domain.LockfileName
	}
	if err := a.locks.Save(path, domain.NewLockfile(g)); err != nil {
		return zerr.Wrap(err, "failed to save lockfile")
	}
	a.logger.Info("lockfile written to " + path)
	return nil
}

// FlagsOptions selects the package and output of Flags.
type FlagsOptions struct {
	// Package names the node to render. Empty renders the whole consumer.
	Package string
	// Format is a registered format name, "text" by default.
	Format string
}

// Flags renders the aggregated build and link metadata of a node and its
// public dependencies with the toolchain of the host configuration.
func (a *App) Flags(ctx context.Context, opts ResolveOptions, flags FlagsOptions) error {
	defer func() { _ = a.telemetry.Close() }()

	g, err := a.Resolve(ctx, opts)
	if err != nil {
		return err
	}

	target := g.Root()
	if flags.Package != "" {
		target = g.FindByName(flags.Package)
		if target == nil {
			return zerr.With(zerr.Wrap(domain.ErrNodeNotFound, flags.Package), "package", flags.Package)
		}
	}

	// Consumers link before their dependencies.
	nodes := append([]*domain.Node{target}, g.PublicClosure(target)...)
	slices.Reverse(nodes[1:])
	views := make([]domain.ComponentView, 0, len(nodes))
	for _, n := range nodes {
		if n.CppInfo != nil {
			views = append(views, n.CppInfo.View())
		}
	}

	settings := target.Settings
	if _, ok := settings.Get("compiler"); !ok {
		settings = g.Root().Settings
	}
	osName, _ := settings.Get("os")
	compiler, _ := settings.Get("compiler")
	format := flags.Format
	if format == "" {
		format = "text"
	}

	tc, err := a.registry.Toolchain(osName, compiler, format)
	if err != nil {
		return err
	}
	return tc.Render(a.out, domain.MergeViews(views...), a.registry.Cppstd(settings))
}
