// Package identity computes package ids and decides how every binary of a
// resolved graph is obtained.
package identity

import (
	"context"
	"fmt"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/keel/internal/engine/toolchain"
	"go.trai.ch/zerr"
)

// Computer assigns package ids in dependency order.
type Computer struct {
	registry *toolchain.Registry
}

// NewComputer creates a Computer. The registry supplies cppstd variants for
// recipes that accept binaries built with another standard.
func NewComputer(registry *toolchain.Registry) *Computer {
	return &Computer{registry: registry}
}

// Compute walks the graph dependencies first. Each node gets its identity
// input, its frozen package id and its compatible variants. mode is the
// contribution of dependencies unless a recipe changes it.
func (c *Computer) Compute(ctx context.Context, g *domain.Graph, mode domain.PackageIDMode) error {
	if mode == "" {
		mode = domain.DefaultPackageIDMode
	}
	for _, n := range g.OrderedIterate() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if n.Virtual {
			continue
		}
		if err := c.compute(n, mode); err != nil {
			return err
		}
	}
	return nil
}

func (c *Computer) compute(n *domain.Node, mode domain.PackageIDMode) error {
	info := c.packageInfo(n, mode)
	inst, _ := n.Instance.(ports.RecipeInstance)

	if hook, ok := inst.(ports.PackageIDHook); ok {
		if err := hook.PackageID(info); err != nil {
			return hookError(n, "package_id", err)
		}
	}

	id := info.PackageID()
	n.Info = info
	if err := n.SetPackageID(id); err != nil {
		return err
	}

	var variants []*domain.PackageInfo
	if hook, ok := inst.(ports.CompatibilityHook); ok {
		proposed, err := hook.Compatibility(info.Clone())
		if err != nil {
			return hookError(n, "compatibility", err)
		}
		variants = append(variants, proposed...)
	}
	if std, ok := inst.(ports.CppstdCompatible); ok && std.CppstdCompatible() && c.registry != nil {
		variants = append(variants, c.registry.CppstdVariants(info)...)
	}
	n.Compatible = dedupe(id, variants)
	return nil
}

// packageInfo assembles the identity input: the pruned settings and options
// plus the ids of the public runtime dependencies.
func (c *Computer) packageInfo(n *domain.Node, mode domain.PackageIDMode) *domain.PackageInfo {
	var settings, options []domain.KeyValue
	if n.Settings != nil {
		settings = n.Settings.Values()
	}
	if n.Options != nil {
		options = n.Options.Values()
	}
	requires := make([]domain.RequireInfo, 0, len(n.Dependencies))
	seen := make(map[*domain.Node]bool, len(n.Dependencies))
	for _, e := range n.Dependencies {
		if e.Require.Private || e.Require.Build || e.Require.Override || seen[e.Dst] {
			continue
		}
		seen[e.Dst] = true
		requires = append(requires, domain.RequireInfo{Ref: e.Dst.Ref, PackageID: e.Dst.PackageID(), Mode: mode})
	}
	return domain.NewPackageInfo(settings, options, requires)
}

// dedupe drops variants equal to the requested id or to an earlier variant.
func dedupe(id string, variants []*domain.PackageInfo) []*domain.PackageInfo {
	seen := map[string]bool{id: true}
	out := make([]*domain.PackageInfo, 0, len(variants))
	for _, v := range variants {
		vid := v.PackageID()
		if seen[vid] {
			continue
		}
		seen[vid] = true
		out = append(out, v)
	}
	return out
}

func hookError(n *domain.Node, hook string, err error) error {
	ref := n.Ref.String()
	return zerr.With(zerr.With(zerr.Wrap(fmt.Errorf("%w: %w", err, domain.ErrRecipeHook), ref+": "+hook), "reference", ref), "hook", hook)
}
