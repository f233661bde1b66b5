// Package domain contains the core domain models of the dependency graph:
// references, settings, options, graph nodes and package identities.
package domain

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Node is one resolved recipe instance.
type Node struct {
	// ID is the creation sequence number, stable for a given resolution.
	ID      int
	Ref     Reference
	Context Context
	// Virtual is set on the synthetic root consumer only.
	Virtual bool
	// Instance is the recipe instance that produced the node. The engines
	// assert it to ports.RecipeInstance; the domain never calls it.
	Instance any
	State    NodeState

	Settings *Settings
	Options  *Options
	// Info is the identity input the package id was computed from.
	Info *PackageInfo
	// Compatible are alternative identity inputs proposed by the recipe, in order.
	Compatible []*PackageInfo
	// ResolvedPackageID differs from PackageID when a compatible binary was chosen.
	ResolvedPackageID string
	BinaryStatus      BinaryStatus
	// Deferred carries a configuration failure reported only when building.
	Deferred Deferred
	CppInfo  *CppInfo

	Dependencies []*Edge
	Dependants   []*Edge

	packageID string
}

// Edge connects a consumer to one of its dependencies.
type Edge struct {
	Src     *Node
	Dst     *Node
	Require Requirement
}

// PackageID returns the computed package id, empty before identity computation.
func (n *Node) PackageID() string {
	return n.packageID
}

// SetPackageID freezes the node's identity. Assigning a different id twice fails.
func (n *Node) SetPackageID(id string) error {
	if n.packageID != "" && n.packageID != id {
		return zerr.With(zerr.With(zerr.Wrap(ErrPackageIDFrozen, n.Ref.String()), "reference", n.Ref.String()), "package_id", n.packageID)
	}
	n.packageID = id
	if n.Options != nil {
		n.Options.Freeze()
	}
	return nil
}

// BinaryRef returns the binary reference of the resolved package id.
func (n *Node) BinaryRef() BinaryReference {
	id := n.ResolvedPackageID
	if id == "" {
		id = n.packageID
	}
	return BinaryReference{Ref: n.Ref, PackageID: id}
}

// String renders the node as "ref (context)".
func (n *Node) String() string {
	if n.Virtual {
		return "virtual"
	}
	return n.Ref.String() + " (" + n.Context.String() + ")"
}

// Key identifies the node for unification: package key plus context.
func (n *Node) Key() NodeKey {
	return NodeKey{Package: n.Ref.PackageKey(), Context: n.Context}
}

// Chain returns the requirer chain from the root to this node, following the
// first consumer of every node.
func (n *Node) Chain() []*Node {
	var chain []*Node
	seen := make(map[*Node]bool)
	for cur := n; cur != nil && !seen[cur]; {
		seen[cur] = true
		chain = append(chain, cur)
		if len(cur.Dependants) == 0 {
			break
		}
		cur = cur.Dependants[0].Src
	}
	slices.Reverse(chain)
	return chain
}

// FormatChain renders a requirer chain as "virtual -> app/1.0 -> lib/1.0".
func FormatChain(chain []*Node) string {
	parts := make([]string, 0, len(chain))
	for _, n := range chain {
		if n.Virtual {
			parts = append(parts, "virtual")
			continue
		}
		parts = append(parts, n.Ref.String())
	}
	return strings.Join(parts, " -> ")
}

// NodeKey is the unification key of a node.
type NodeKey struct {
	Package string
	Context Context
}

// Graph is the resolved dependency graph with its synthetic root.
type Graph struct {
	root  *Node
	nodes []*Node
	index map[NodeKey]*Node
}

// NewGraph creates a graph holding only the virtual root.
func NewGraph() *Graph {
	root := &Node{ID: 0, Virtual: true, Context: ContextHost, State: NodeResolved}
	return &Graph{
		root:  root,
		nodes: []*Node{root},
		index: make(map[NodeKey]*Node),
	}
}

// Root returns the synthetic consumer.
func (g *Graph) Root() *Node {
	return g.root
}

// Nodes returns every node, root first, in creation order.
func (g *Graph) Nodes() []*Node {
	return slices.Clone(g.nodes)
}

// Len returns the number of nodes including the root.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// NewNode adds a node for ref in the given context.
func (g *Graph) NewNode(ref Reference, ctx Context) *Node {
	n := &Node{ID: len(g.nodes), Ref: ref, Context: ctx, State: NodePending}
	g.nodes = append(g.nodes, n)
	g.index[n.Key()] = n
	return n
}

// Find returns the node for a package in a context, or nil.
func (g *Graph) Find(ref Reference, ctx Context) *Node {
	return g.index[NodeKey{Package: ref.PackageKey(), Context: ctx}]
}

// FindByName returns the first node, in creation order, whose name matches.
// HOST nodes are preferred over BUILD nodes.
func (g *Graph) FindByName(name string) *Node {
	var found *Node
	for _, n := range g.nodes[1:] {
		if n.Ref.Name != name {
			continue
		}
		if n.Context == ContextHost {
			return n
		}
		if found == nil {
			found = n
		}
	}
	return found
}

// AddEdge connects src to dst.
func (g *Graph) AddEdge(src, dst *Node, req Requirement) *Edge {
	e := &Edge{Src: src, Dst: dst, Require: req}
	src.Dependencies = append(src.Dependencies, e)
	dst.Dependants = append(dst.Dependants, e)
	return e
}

// Validate checks that the graph is acyclic using DFS colouring. A cycle is
// reported as ErrDependencyLoop with the loop, e.g. "a/1 -> b/1 -> a/1".
func (g *Graph) Validate() error {
	const (
		white = iota
		grey
		black
	)
	colour := make(map[*Node]int, len(g.nodes))
	var path []*Node

	var visit func(n *Node) error
	visit = func(n *Node) error {
		colour[n] = grey
		path = append(path, n)
		for _, e := range n.Dependencies {
			if e.Require.Override {
				continue
			}
			switch colour[e.Dst] {
			case grey:
				return g.buildCycleError(path, e.Dst)
			case white:
				if err := visit(e.Dst); err != nil {
					return err
				}
			}
		}
		colour[n] = black
		path = path[:len(path)-1]
		return nil
	}

	for _, n := range g.nodes {
		if colour[n] == white {
			if err := visit(n); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []*Node, dep *Node) error {
	start := slices.Index(path, dep)
	refs := make([]string, 0, len(path)-start+1)
	for _, n := range path[start:] {
		refs = append(refs, n.Ref.String())
	}
	refs = append(refs, dep.Ref.String())
	cycle := strings.Join(refs, " -> ")
	return zerr.With(zerr.Wrap(ErrDependencyLoop, cycle), "cycle", cycle)
}

// ByLevels groups nodes so that every node's dependencies are in earlier
// levels. Levels are sorted by reference string, then context. The root is
// always in the last level.
func (g *Graph) ByLevels() [][]*Node {
	pending := make(map[*Node]int, len(g.nodes))
	for _, n := range g.nodes {
		pending[n] = len(n.Dependencies)
	}
	var levels [][]*Node
	var current []*Node
	for _, n := range g.nodes {
		if pending[n] == 0 {
			current = append(current, n)
		}
	}
	for len(current) > 0 {
		slices.SortFunc(current, compareNodes)
		levels = append(levels, current)
		var next []*Node
		for _, n := range current {
			for _, e := range n.Dependants {
				pending[e.Src]--
				if pending[e.Src] == 0 {
					next = append(next, e.Src)
				}
			}
		}
		current = next
	}
	return levels
}

func compareNodes(a, b *Node) int {
	if a.Virtual != b.Virtual {
		if a.Virtual {
			return 1
		}
		return -1
	}
	return cmp.Or(
		strings.Compare(a.Ref.String(), b.Ref.String()),
		cmp.Compare(a.Context, b.Context),
	)
}

// OrderedIterate returns every node after all of its dependencies, including
// the build-requires of a node before the node itself.
func (g *Graph) OrderedIterate() []*Node {
	var out []*Node
	for _, level := range g.ByLevels() {
		out = append(out, level...)
	}
	return out
}

// Walk returns an iterator over OrderedIterate.
func (g *Graph) Walk() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, n := range g.OrderedIterate() {
			if !yield(n) {
				return
			}
		}
	}
}

// PublicClosure returns the transitive dependencies visible to consumers of
// n: private and build-require edges are not followed, n's own private
// dependencies are excluded. The result is in dependency order.
func (g *Graph) PublicClosure(n *Node) []*Node {
	return g.closure(n, func(e *Edge) bool {
		return !e.Require.Private && !e.Require.Build && !e.Require.Override
	})
}

// Closure returns every transitive dependency of n over non-build edges,
// private ones included.
func (g *Graph) Closure(n *Node) []*Node {
	return g.closure(n, func(e *Edge) bool { return !e.Require.Build && !e.Require.Override })
}

func (g *Graph) closure(n *Node, follow func(*Edge) bool) []*Node {
	seen := map[*Node]bool{n: true}
	var found []*Node
	queue := []*Node{n}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range cur.Dependencies {
			if !follow(e) || seen[e.Dst] {
				continue
			}
			seen[e.Dst] = true
			found = append(found, e.Dst)
			queue = append(queue, e.Dst)
		}
	}
	order := make(map[*Node]int, len(g.nodes))
	for i, node := range g.OrderedIterate() {
		order[node] = i
	}
	slices.SortFunc(found, func(a, b *Node) int { return cmp.Compare(order[a], order[b]) })
	return found
}

// Requirers returns the nodes that directly depend on n, deduplicated, in edge order.
func (g *Graph) Requirers(n *Node) []*Node {
	var out []*Node
	for _, e := range n.Dependants {
		if !slices.Contains(out, e.Src) {
			out = append(out, e.Src)
		}
	}
	return out
}

// Fingerprint hashes node references, contexts, edges and package ids. Two
// resolutions with equal fingerprints produced isomorphic graphs.
func (g *Graph) Fingerprint() string {
	hasher := xxhash.New()
	for _, n := range g.OrderedIterate() {
		_, _ = hasher.WriteString(n.String())
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(n.packageID)
		_, _ = hasher.Write([]byte{0})
		for _, e := range n.Dependencies {
			_, _ = hasher.WriteString(e.Dst.String())
			_, _ = hasher.WriteString(strconv.FormatBool(e.Require.Build))
			_, _ = hasher.WriteString(strconv.FormatBool(e.Require.Private))
			_, _ = hasher.Write([]byte{0})
		}
	}
	return fmt.Sprintf("%016x", hasher.Sum64())
}
