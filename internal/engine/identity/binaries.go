package identity

import (
	"context"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Analyzer decides the BinaryStatus of every node.
type Analyzer struct {
	oracle ports.Oracle
	cache  ports.PackageCache
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(oracle ports.Oracle, cache ports.PackageCache) *Analyzer {
	return &Analyzer{oracle: oracle, cache: cache}
}

// Analyze checks every node concurrently, at most maxParallel at a time, then
// marks the BUILD context nodes nobody needs as skipped. Package ids must be
// computed first.
func (a *Analyzer) Analyze(ctx context.Context, g *domain.Graph, policy domain.BuildPolicy, maxParallel int) error {
	eg, ctx := errgroup.WithContext(ctx)
	if maxParallel <= 0 {
		maxParallel = domain.DefaultMaxParallelChecks
	}
	eg.SetLimit(maxParallel)

	for _, n := range g.Nodes() {
		if n.Virtual {
			continue
		}
		eg.Go(func() error {
			return a.check(ctx, n, policy)
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	markSkipped(g)
	return nil
}

// check writes only n.
func (a *Analyzer) check(ctx context.Context, n *domain.Node, policy domain.BuildPolicy) error {
	id := n.PackageID()
	if id == "" {
		return zerr.With(zerr.Wrap(domain.ErrNodeNotFound, "no package id for "+n.Ref.String()), "reference", n.Ref.String())
	}
	n.ResolvedPackageID = id

	if policy.Forces(n.Ref) {
		n.BinaryStatus = domain.BinaryBuild
		return nil
	}

	candidates := make([]string, 0, len(n.Compatible)+1)
	candidates = append(candidates, id)
	for _, v := range n.Compatible {
		candidates = append(candidates, v.PackageID())
	}
	for _, candidate := range candidates {
		status, err := a.lookup(ctx, domain.BinaryReference{Ref: n.Ref, PackageID: candidate})
		if err != nil {
			return zerr.With(err, "reference", n.Ref.String())
		}
		if status != domain.BinaryUnknown {
			n.BinaryStatus = status
			n.ResolvedPackageID = candidate
			return nil
		}
	}

	if policy.AllowsMissing() {
		n.BinaryStatus = domain.BinaryBuild
	} else {
		n.BinaryStatus = domain.BinaryMissing
	}
	return nil
}

// lookup prefers the local cache over a download.
func (a *Analyzer) lookup(ctx context.Context, bref domain.BinaryReference) (domain.BinaryStatus, error) {
	if a.cache != nil {
		ok, err := a.cache.Has(ctx, bref)
		if err != nil {
			return domain.BinaryUnknown, err
		}
		if ok {
			return domain.BinaryCache, nil
		}
	}
	ok, err := a.oracle.BinaryExists(ctx, bref)
	if err != nil {
		return domain.BinaryUnknown, err
	}
	if ok {
		return domain.BinaryDownload, nil
	}
	return domain.BinaryUnknown, nil
}

// markSkipped keeps the BUILD nodes reachable from something that is built:
// the consumer itself, HOST nodes being built, and recursively the runtime
// dependencies and, when built, the tools of every kept node.
func markSkipped(g *domain.Graph) {
	needed := make(map[*domain.Node]bool)
	queue := []*domain.Node{g.Root()}
	for _, n := range g.Nodes() {
		if n.Context == domain.ContextHost && n.BinaryStatus == domain.BinaryBuild {
			queue = append(queue, n)
		}
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, e := range n.Dependencies {
			dst := e.Dst
			if e.Require.Override || dst.Context != domain.ContextBuild || needed[dst] {
				continue
			}
			if n.Context == domain.ContextBuild && e.Require.Build && n.BinaryStatus != domain.BinaryBuild {
				continue
			}
			needed[dst] = true
			queue = append(queue, dst)
		}
	}
	for _, n := range g.Nodes() {
		if n.Context == domain.ContextBuild && !needed[n] {
			n.BinaryStatus = domain.BinarySkip
		}
	}
}
