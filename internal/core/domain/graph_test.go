package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/zerr"
)

func req(t *testing.T, text string) domain.Requirement {
	t.Helper()
	r, err := domain.ParseRequirement(text)
	require.NoError(t, err)
	return r
}

// diamondGraph builds root -> app -> {openssl, zlib}, openssl -> zlib,
// app -(private)-> secret, app -(build)-> cmake.
func diamondGraph(t *testing.T) (*domain.Graph, map[string]*domain.Node) {
	t.Helper()
	g := domain.NewGraph()
	n := map[string]*domain.Node{
		"app":     g.NewNode(domain.MustParseReference("app/1.0"), domain.ContextHost),
		"openssl": g.NewNode(domain.MustParseReference("openssl/3.0"), domain.ContextHost),
		"zlib":    g.NewNode(domain.MustParseReference("zlib/1.2"), domain.ContextHost),
		"secret":  g.NewNode(domain.MustParseReference("secret/1.0"), domain.ContextHost),
		"cmake":   g.NewNode(domain.MustParseReference("cmake/3.20"), domain.ContextBuild),
	}
	g.AddEdge(g.Root(), n["app"], req(t, "app/1.0"))
	g.AddEdge(n["app"], n["openssl"], req(t, "openssl/3.0"))
	g.AddEdge(n["app"], n["zlib"], req(t, "zlib/1.2"))
	g.AddEdge(n["openssl"], n["zlib"], req(t, "zlib/1.2"))

	private := req(t, "secret/1.0")
	private.Private = true
	g.AddEdge(n["app"], n["secret"], private)

	build := req(t, "cmake/3.20")
	build.Build = true
	g.AddEdge(n["app"], n["cmake"], build)
	return g, n
}

func refsOf(nodes []*domain.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.String())
	}
	return out
}

func TestGraph_Validate_Acyclic(t *testing.T) {
	g, _ := diamondGraph(t)
	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGraph_Validate_Cycle(t *testing.T) {
	g := domain.NewGraph()
	a := g.NewNode(domain.MustParseReference("liba/1.0"), domain.ContextHost)
	b := g.NewNode(domain.MustParseReference("libb/1.0"), domain.ContextHost)
	c := g.NewNode(domain.MustParseReference("libc/1.0"), domain.ContextHost)
	g.AddEdge(g.Root(), a, req(t, "liba/1.0"))
	g.AddEdge(a, b, req(t, "libb/1.0"))
	g.AddEdge(b, c, req(t, "libc/1.0"))
	g.AddEdge(c, a, req(t, "liba/1.0"))

	err := g.Validate()
	if err == nil {
		t.Fatal("expected error for cycle, got nil")
	}
	if !errors.Is(err, domain.ErrDependencyLoop) {
		t.Fatalf("expected ErrDependencyLoop, got %v", err)
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	cycle, ok := zErr.Metadata()["cycle"].(string)
	if !ok {
		t.Fatal("expected cycle metadata to be a string")
	}
	if want := "liba/1.0 -> libb/1.0 -> libc/1.0 -> liba/1.0"; cycle != want {
		t.Errorf("expected cycle %q, got %q", want, cycle)
	}
}

func TestGraph_Validate_IgnoresOverrideEdges(t *testing.T) {
	g := domain.NewGraph()
	a := g.NewNode(domain.MustParseReference("liba/1.0"), domain.ContextHost)
	g.AddEdge(g.Root(), a, req(t, "liba/1.0"))

	override := req(t, "liba/1.0")
	override.Override = true
	g.AddEdge(a, a, override)

	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGraph_ByLevels(t *testing.T) {
	g, _ := diamondGraph(t)

	levels := g.ByLevels()
	require.Len(t, levels, 4)
	assert.Equal(t, []string{"cmake/3.20 (build)", "secret/1.0 (host)", "zlib/1.2 (host)"}, refsOf(levels[0]))
	assert.Equal(t, []string{"openssl/3.0 (host)"}, refsOf(levels[1]))
	assert.Equal(t, []string{"app/1.0 (host)"}, refsOf(levels[2]))
	assert.Equal(t, []string{"virtual"}, refsOf(levels[3]))
}

func TestGraph_OrderedIterate_Topological(t *testing.T) {
	g, _ := diamondGraph(t)

	position := make(map[*domain.Node]int)
	i := 0
	for n := range g.Walk() {
		position[n] = i
		i++
	}
	require.Len(t, position, g.Len())

	for _, n := range g.Nodes() {
		for _, e := range n.Dependencies {
			assert.Less(t, position[e.Dst], position[n], "%s must come before %s", e.Dst, n)
		}
	}
}

func TestGraph_Closures(t *testing.T) {
	g, n := diamondGraph(t)

	assert.Equal(t, []string{"zlib/1.2 (host)", "openssl/3.0 (host)"}, refsOf(g.PublicClosure(n["app"])))
	assert.Equal(t, []string{"secret/1.0 (host)", "zlib/1.2 (host)", "openssl/3.0 (host)"}, refsOf(g.Closure(n["app"])))
	assert.Equal(t, []string{"zlib/1.2 (host)"}, refsOf(g.PublicClosure(n["openssl"])))
	assert.Empty(t, g.PublicClosure(n["zlib"]))
}

func TestGraph_Lookup(t *testing.T) {
	g, n := diamondGraph(t)

	assert.Same(t, n["zlib"], g.Find(domain.MustParseReference("zlib/9.9"), domain.ContextHost))
	assert.Nil(t, g.Find(domain.MustParseReference("zlib/1.2"), domain.ContextBuild))

	hostCmake := g.NewNode(domain.MustParseReference("cmake/3.20"), domain.ContextHost)
	assert.Same(t, hostCmake, g.FindByName("cmake"))
	assert.Nil(t, g.FindByName("boost"))

	assert.Equal(t, []*domain.Node{n["app"], n["openssl"]}, g.Requirers(n["zlib"]))
}

func TestNode_Chain(t *testing.T) {
	_, n := diamondGraph(t)

	assert.Equal(t, "virtual -> app/1.0 -> zlib/1.2", domain.FormatChain(n["zlib"].Chain()))
	assert.Equal(t, "virtual -> app/1.0 -> openssl/3.0", domain.FormatChain(n["openssl"].Chain()))
}

func TestNode_SetPackageID(t *testing.T) {
	g := domain.NewGraph()
	node := g.NewNode(domain.MustParseReference("zlib/1.2"), domain.ContextHost)
	opts, err := domain.NewOptions(testOptionDefs())
	require.NoError(t, err)
	node.Options = opts

	require.NoError(t, node.SetPackageID("abc"))
	require.NoError(t, node.SetPackageID("abc"))
	assert.True(t, opts.Frozen())

	err = node.SetPackageID("def")
	require.ErrorIs(t, err, domain.ErrPackageIDFrozen)
	assert.Equal(t, "abc", node.PackageID())

	assert.Equal(t, "zlib/1.2:abc", node.BinaryRef().String())
	node.ResolvedPackageID = "compat"
	assert.Equal(t, "zlib/1.2:compat", node.BinaryRef().String())
}

func TestGraph_Fingerprint(t *testing.T) {
	g1, _ := diamondGraph(t)
	g2, n2 := diamondGraph(t)
	assert.Equal(t, g1.Fingerprint(), g2.Fingerprint())
	assert.Len(t, g1.Fingerprint(), 16)

	require.NoError(t, n2["zlib"].SetPackageID("abc"))
	assert.NotEqual(t, g1.Fingerprint(), g2.Fingerprint())
}
