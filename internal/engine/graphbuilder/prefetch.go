package graphbuilder

import (
	"context"
	"sync"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// future is one memoized oracle answer. It is computed at most once, either
// by a prefetch goroutine or inline by the first reader.
type future[T any] struct {
	once  sync.Once
	fetch func() (T, error)
	val   T
	err   error
}

func (f *future[T]) get() (T, error) {
	f.once.Do(func() { f.val, f.err = f.fetch() })
	return f.val, f.err
}

// prefetcher memoizes oracle queries for the lifetime of one Build call and
// warms them concurrently. Errors are stored, never returned by the group, so
// they only surface when the resolution reads them.
type prefetcher struct {
	oracle ports.Oracle
	group  *errgroup.Group

	mu        sync.Mutex
	versions  map[string]*future[[]string]
	revisions map[string]*future[string]
	recipes   map[string]*future[ports.Recipe]
}

func newPrefetcher(oracle ports.Oracle, limit int) *prefetcher {
	g := new(errgroup.Group)
	if limit > 0 {
		g.SetLimit(limit)
	}
	return &prefetcher{
		oracle:    oracle,
		group:     g,
		versions:  make(map[string]*future[[]string]),
		revisions: make(map[string]*future[string]),
		recipes:   make(map[string]*future[ports.Recipe]),
	}
}

// warm starts the queries a requirement will need. When the pool is full the
// query is left for the reader.
func (p *prefetcher) warm(ctx context.Context, req domain.Requirement) {
	if req.Override {
		return
	}
	if req.Ref.IsRange() {
		p.start(p.versionsFuture(ctx, req.Ref))
		return
	}
	if req.Ref.Revision == "" {
		p.start(p.revisionFuture(ctx, req.Ref))
		return
	}
	p.start(p.recipeFuture(ctx, req.Ref))
}

type primer interface{ prime() }

func (f *future[T]) prime() { _, _ = f.get() }

func (p *prefetcher) start(f primer) {
	p.group.TryGo(func() error {
		f.prime()
		return nil
	})
}

// wait blocks until every started prefetch has finished.
func (p *prefetcher) wait() {
	_ = p.group.Wait()
}

func (p *prefetcher) listVersions(ctx context.Context, ref domain.Reference) ([]string, error) {
	return p.versionsFuture(ctx, ref).get()
}

func (p *prefetcher) latestRevision(ctx context.Context, ref domain.Reference) (string, error) {
	return p.revisionFuture(ctx, ref).get()
}

func (p *prefetcher) recipeFor(ctx context.Context, ref domain.Reference) (ports.Recipe, error) {
	return p.recipeFuture(ctx, ref).get()
}

func (p *prefetcher) versionsFuture(ctx context.Context, ref domain.Reference) *future[[]string] {
	key := ref.PackageKey()
	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.versions[key]
	if !ok {
		f = &future[[]string]{fetch: func() ([]string, error) { return p.oracle.ListVersions(ctx, ref) }}
		p.versions[key] = f
	}
	return f
}

func (p *prefetcher) revisionFuture(ctx context.Context, ref domain.Reference) *future[string] {
	key := ref.WithoutRevision().String()
	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.revisions[key]
	if !ok {
		f = &future[string]{fetch: func() (string, error) { return p.oracle.LatestRevision(ctx, ref) }}
		p.revisions[key] = f
	}
	return f
}

func (p *prefetcher) recipeFuture(ctx context.Context, ref domain.Reference) *future[ports.Recipe] {
	key := ref.String()
	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.recipes[key]
	if !ok {
		f = &future[ports.Recipe]{fetch: func() (ports.Recipe, error) { return p.oracle.RecipeFor(ctx, ref) }}
		p.recipes[key] = f
	}
	return f
}
