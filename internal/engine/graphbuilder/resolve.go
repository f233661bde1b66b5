package graphbuilder

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/zerr"
)

// item is one pending requirement of the worklist.
type item struct {
	require  domain.Requirement
	consumer *domain.Node
	context  domain.Context
	// downstream are the option assignments imposed by the consumers, lowest
	// precedence first.
	downstream []domain.OptionAssignment
}

func (it item) key() domain.NodeKey {
	return domain.NodeKey{Package: it.require.Ref.PackageKey(), Context: it.context}
}

// resolution is a single attempt at building the graph. It is discarded when
// a conflict asks for a restart.
type resolution struct {
	b           *Builder
	req         Request
	fetch       *prefetcher
	constraints map[domain.NodeKey][]constraint
	host, build *domain.Settings

	graph     *domain.Graph
	queue     []item
	overrides map[domain.NodeKey]domain.Reference
	// tools are the option assignments of BUILD nodes entered from HOST.
	tools []domain.OptionAssignment
}

func newResolution(
	b *Builder,
	req Request,
	fetch *prefetcher,
	constraints map[domain.NodeKey][]constraint,
	host, build *domain.Settings,
) *resolution {
	r := &resolution{
		b:           b,
		req:         req,
		fetch:       fetch,
		constraints: constraints,
		host:        host,
		build:       build,
		graph:       domain.NewGraph(),
		overrides:   make(map[domain.NodeKey]domain.Reference),
	}
	for key, cs := range constraints {
		for _, c := range cs {
			if c.forced {
				r.overrides[key] = c.ref
				break
			}
		}
	}
	return r
}

func (r *resolution) run(ctx context.Context) (*domain.Graph, error) {
	root := r.graph.Root()
	root.Settings = r.host.Copy()

	profileOptions := r.scoped(ctx, "profile "+r.req.HostProfile.Name, r.req.HostProfile.Options)
	rootOptions := slices.Concat(
		r.scoped(ctx, "consumer", r.req.Consumer.Options),
		profileOptions,
		r.scoped(ctx, "command line", r.req.Options),
	)
	r.tools = profileOptions
	if !slices.Equal(r.req.BuildProfile.Options, r.req.HostProfile.Options) {
		r.tools = r.scoped(ctx, "profile "+r.req.BuildProfile.Name, r.req.BuildProfile.Options)
	}

	for _, req := range r.req.Consumer.Requires {
		r.enqueue(ctx, item{require: req, consumer: root, context: domain.ContextHost, downstream: rootOptions})
	}
	for _, req := range r.req.Consumer.BuildRequires {
		req.Build = true
		r.enqueue(ctx, item{require: req, consumer: root, context: domain.ContextBuild, downstream: r.tools})
	}

	for len(r.queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		it := r.queue[0]
		r.queue = r.queue[1:]
		if err := r.step(ctx, it); err != nil {
			return nil, err
		}
	}
	return r.graph, nil
}

func (r *resolution) enqueue(ctx context.Context, it item) {
	r.fetch.warm(ctx, it.require)
	r.queue = append(r.queue, it)
}

// scoped drops the assignments without a package pattern. Only packages
// declare options, so they have no target.
func (r *resolution) scoped(ctx context.Context, source string, values []domain.OptionAssignment) []domain.OptionAssignment {
	out := make([]domain.OptionAssignment, 0, len(values))
	for _, a := range values {
		if a.Pattern == "" {
			warn(ctx, r.b.logger, "option "+a.String()+" from "+source+" ignored: no package pattern")
			continue
		}
		out = append(out, a)
	}
	return out
}

// step resolves one requirement: it reuses a compatible node, records a
// tighter constraint, or creates and expands a new node.
func (r *resolution) step(ctx context.Context, it item) error {
	if it.require.Override {
		return r.override(it)
	}
	if existing := r.graph.Find(it.require.Ref, it.context); existing != nil {
		return r.unify(ctx, it, existing)
	}
	if shared := r.shared(it); shared != nil {
		r.graph.AddEdge(it.consumer, shared, it.require)
		return nil
	}

	ref, err := r.pick(ctx, it)
	if err != nil {
		return err
	}
	node := r.graph.NewNode(ref, it.context)
	r.graph.AddEdge(it.consumer, node, it.require)
	return r.expand(ctx, node, it)
}

// override records a forced reference. It never adds an edge; a node that
// was already resolved to another version triggers a restart.
func (r *resolution) override(it item) error {
	key := it.key()
	if _, locked := r.req.Pins[key]; locked {
		return nil
	}
	forced, ok := r.overrides[key]
	if !ok {
		forced = it.require.Ref
		r.overrides[key] = forced
	}
	existing := r.graph.Find(it.require.Ref, it.context)
	if existing == nil || satisfies(existing.Ref, forced) {
		return nil
	}
	return &restartError{key: key, constraint: constraint{ref: forced, forced: true}}
}

// shared returns the HOST node a build-requirement may reuse.
func (r *resolution) shared(it item) *domain.Node {
	if !r.req.Policy.ShareBuildRequires || it.context != domain.ContextBuild || !it.require.Build {
		return nil
	}
	host := r.graph.Find(it.require.Ref, domain.ContextHost)
	if host == nil || host.State != domain.NodeResolved || !satisfies(host.Ref, it.require.Ref) {
		return nil
	}
	return host
}

// unify connects a requirement to the existing node of its package.
func (r *resolution) unify(ctx context.Context, it item, existing *domain.Node) error {
	key := it.key()
	if forced, ok := r.overrides[key]; ok && satisfies(existing.Ref, forced) {
		r.graph.AddEdge(it.consumer, existing, it.require)
		return nil
	}
	if satisfies(existing.Ref, it.require.Ref) {
		r.graph.AddEdge(it.consumer, existing, it.require)
		return nil
	}
	if _, locked := r.req.Pins[key]; locked {
		return conflictError(it, existing)
	}
	if slices.ContainsFunc(r.constraints[key], func(c constraint) bool { return c.ref == it.require.Ref }) {
		return conflictError(it, existing)
	}

	rules := []domain.Reference{it.require.Ref}
	for _, e := range existing.Dependants {
		rules = append(rules, e.Require.Ref)
	}
	rules = append(rules, r.constrained(key)...)
	_, found, err := r.intersect(ctx, it.require.Ref, rules)
	if err != nil {
		return err
	}
	if !found {
		return conflictError(it, existing)
	}
	return &restartError{key: key, constraint: constraint{ref: it.require.Ref}}
}

// pick chooses the reference of a new node: a lockfile pin, an override, or
// the best version satisfying the requirement and every learned constraint.
func (r *resolution) pick(ctx context.Context, it item) (domain.Reference, error) {
	key := it.key()
	var rules []domain.Reference
	if pin, ok := r.req.Pins[key]; ok {
		if !satisfies(pin, it.require.Ref) {
			return domain.Reference{}, zerr.With(zerr.With(zerr.Wrap(domain.ErrConflict,
				fmt.Sprintf("locked %s does not satisfy %s required by %s", pin, it.require.Ref, domain.FormatChain(it.consumer.Chain()))),
				"reference", pin.String()), "requested", it.require.Ref.String())
		}
		rules = []domain.Reference{pin}
	} else if forced, ok := r.overrides[key]; ok {
		rules = []domain.Reference{forced}
	} else {
		rules = append([]domain.Reference{it.require.Ref}, r.constrained(key)...)
	}

	ref, found, err := r.intersect(ctx, it.require.Ref, rules)
	if err != nil {
		return domain.Reference{}, err
	}
	if !found {
		return domain.Reference{}, r.noResult(ctx, it, rules)
	}
	if ref.Revision != "" {
		return ref, nil
	}
	rev, err := r.fetch.latestRevision(ctx, ref)
	if err != nil {
		return domain.Reference{}, zerr.With(err, "chain", domain.FormatChain(it.consumer.Chain()))
	}
	return ref.WithRevision(rev), nil
}

func (r *resolution) constrained(key domain.NodeKey) []domain.Reference {
	refs := make([]domain.Reference, 0, len(r.constraints[key]))
	for _, c := range r.constraints[key] {
		if !c.forced {
			refs = append(refs, c.ref)
		}
	}
	return refs
}

// intersect finds the reference satisfying every rule. Pinned rules must
// agree; ranges are checked against the versions the oracle knows.
func (r *resolution) intersect(ctx context.Context, ref domain.Reference, rules []domain.Reference) (domain.Reference, bool, error) {
	var pinned *domain.Reference
	ranges := make([]domain.VersionRange, 0, len(rules))
	for i, rule := range rules {
		if rule.IsRange() {
			vr, err := domain.ParseVersionRange(rule.Version)
			if err != nil {
				return domain.Reference{}, false, zerr.With(err, "reference", rule.String())
			}
			ranges = append(ranges, vr)
			continue
		}
		switch {
		case pinned == nil:
			pinned = &rules[i]
		case pinned.Version != rule.Version:
			return domain.Reference{}, false, nil
		case pinned.Revision == "":
			pinned = &rules[i]
		case rule.Revision != "" && rule.Revision != pinned.Revision:
			return domain.Reference{}, false, nil
		}
	}

	if pinned != nil {
		v := domain.ParseVersion(pinned.Version)
		for _, vr := range ranges {
			if !vr.Contains(v) {
				return domain.Reference{}, false, nil
			}
		}
		return ref.WithVersion(pinned.Version).WithRevision(pinned.Revision), true, nil
	}

	available, err := r.fetch.listVersions(ctx, ref)
	if err != nil {
		return domain.Reference{}, false, err
	}
	var best domain.Version
	found := false
	for _, raw := range available {
		v := domain.ParseVersion(raw)
		if !containedByAll(ranges, v) {
			continue
		}
		if !found || v.Compare(best) > 0 {
			best, found = v, true
		}
	}
	if !found {
		return domain.Reference{}, false, nil
	}
	return ref.WithVersion(best.String()), true, nil
}

func containedByAll(ranges []domain.VersionRange, v domain.Version) bool {
	for _, vr := range ranges {
		if !vr.Contains(v) {
			return false
		}
	}
	return true
}

func (r *resolution) noResult(ctx context.Context, it item, rules []domain.Reference) error {
	texts := make([]string, 0, len(rules))
	for _, rule := range rules {
		texts = append(texts, rule.Version)
	}
	available, _ := r.fetch.listVersions(ctx, it.require.Ref)
	chain := domain.FormatChain(it.consumer.Chain())
	return zerr.With(zerr.With(zerr.With(zerr.With(zerr.Wrap(domain.ErrVersionRangeNoResult,
		fmt.Sprintf("%s required by %s", it.require.Ref, chain)),
		"reference", it.require.Ref.String()),
		"range", strings.Join(texts, " && ")),
		"available", strings.Join(available, ", ")),
		"chain", chain)
}

// expand runs the recipe hooks of a new node and enqueues its requirements.
func (r *resolution) expand(ctx context.Context, node *domain.Node, it item) error {
	node.State = domain.NodeExpanding

	recipe, err := r.fetch.recipeFor(ctx, node.Ref)
	if err != nil {
		node.State = domain.NodeError
		return zerr.With(err, "chain", domain.FormatChain(node.Chain()))
	}

	settings, err := r.settingsFor(node.Context).Restrict(recipe.DeclaredSettings())
	if err != nil {
		return hookError(node, "settings", err)
	}
	options, err := domain.NewOptions(recipe.DeclaredOptions())
	if err != nil {
		return hookError(node, "options", err)
	}
	if err := options.PropagateDownstream(it.downstream, node.Ref); err != nil {
		return hookError(node, "options", err)
	}

	inst, err := recipe.Instantiate(settings, options)
	if err != nil {
		return hookError(node, "instantiate", err)
	}
	if err := inst.ConfigOptions(); err != nil {
		return hookError(node, "config_options", err)
	}
	if err := inst.Configure(); err != nil {
		if !errors.Is(err, domain.ErrInvalidConfiguration) {
			return hookError(node, "configure", err)
		}
		node.Deferred = domain.DeferFailure(reason(err))
	}

	reqs := domain.NewRequirements(false)
	if err := inst.Requirements(reqs); err != nil {
		return hookError(node, "requirements", err)
	}
	breqs := domain.NewRequirements(true)
	if err := inst.BuildRequirements(breqs); err != nil {
		return hookError(node, "build_requirements", err)
	}
	r.injectTools(node, breqs)

	node.Instance = inst
	node.Settings = settings
	node.Options = options
	node.State = domain.NodeResolved

	for _, req := range slices.Concat(reqs.Items(), breqs.Items()) {
		child := item{require: req, consumer: node, context: node.Context}
		if req.Build {
			child.context = domain.ContextBuild
		}
		if child.context == node.Context {
			child.downstream = slices.Concat(recipe.DownstreamOptions(), it.downstream)
		} else {
			child.downstream = r.tools
		}
		r.enqueue(ctx, child)
	}
	return nil
}

// injectTools adds the profile's implicit build-requirements. A tool is never
// injected into itself, into a node that declares it, or into the nodes it
// depends on.
func (r *resolution) injectTools(node *domain.Node, breqs *domain.Requirements) {
	for _, tool := range r.profileFor(node.Context).ToolsFor(node.Ref) {
		if tool.SamePackage(node.Ref) || breqs.Has(tool) || requiredBy(node, tool) {
			continue
		}
		_ = breqs.Append(domain.Requirement{Ref: tool, Build: true})
	}
}

// requiredBy reports whether a BUILD node of the tool's package is among the
// transitive consumers of node.
func requiredBy(node *domain.Node, tool domain.Reference) bool {
	seen := make(map[*domain.Node]bool)
	stack := []*domain.Node{node}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range n.Dependants {
			src := e.Src
			if seen[src] || src.Virtual {
				continue
			}
			if src.Context == domain.ContextBuild && src.Ref.SamePackage(tool) {
				return true
			}
			seen[src] = true
			stack = append(stack, src)
		}
	}
	return false
}

func (r *resolution) settingsFor(c domain.Context) *domain.Settings {
	if c == domain.ContextBuild {
		return r.build
	}
	return r.host
}

func (r *resolution) profileFor(c domain.Context) *domain.Profile {
	if c == domain.ContextBuild {
		return r.req.BuildProfile
	}
	return r.req.HostProfile
}

// satisfies reports whether a resolved reference meets a required one.
func satisfies(ref, required domain.Reference) bool {
	if required.IsRange() {
		vr, err := domain.ParseVersionRange(required.Version)
		return err == nil && vr.Contains(domain.ParseVersion(ref.Version))
	}
	if ref.Version != required.Version {
		return false
	}
	return required.Revision == "" || required.Revision == ref.Revision
}

func conflictError(it item, existing *domain.Node) error {
	chain := domain.FormatChain(existing.Chain())
	conflicting := domain.FormatChain(it.consumer.Chain()) + " -> " + it.require.Ref.String()
	return zerr.With(zerr.With(zerr.With(zerr.Wrap(domain.ErrConflict,
		fmt.Sprintf("%s requires %s, but %s is already resolved from %s", domain.FormatChain(it.consumer.Chain()), it.require.Ref, existing.Ref, chain)),
		"reference", existing.Ref.String()),
		"chain", chain),
		"conflicting_chain", conflicting)
}

func hookError(node *domain.Node, hook string, err error) error {
	node.State = domain.NodeError
	ref := node.Ref.String()
	return zerr.With(zerr.With(zerr.With(zerr.Wrap(fmt.Errorf("%w: %w", err, domain.ErrRecipe), ref+": "+hook),
		"reference", ref),
		"hook", hook),
		"chain", domain.FormatChain(node.Chain()))
}

// reason extracts the message of the outermost error link.
func reason(err error) string {
	var m interface{ Message() string }
	if errors.As(err, &m) && m.Message() != "" {
		return m.Message()
	}
	return err.Error()
}
