package graphbuilder_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports/fakes"
	"go.trai.ch/keel/internal/engine/graphbuilder"
	"go.trai.ch/zerr"
)

func values(vs ...string) []domain.SchemaValue {
	out := make([]domain.SchemaValue, 0, len(vs))
	for _, v := range vs {
		out = append(out, domain.SchemaValue{Value: v})
	}
	return out
}

func testSchema(t *testing.T) *domain.SettingsSchema {
	t.Helper()
	schema, err := domain.NewSettingsSchema([]domain.SchemaField{
		{Name: "os", Values: values("Linux", "Windows", "Macos")},
		{Name: "arch", Values: values("x86_64", "armv8")},
		{Name: "compiler", Values: []domain.SchemaValue{
			{Value: "gcc", Fields: []domain.SchemaField{
				{Name: "version", Values: values("11", "12", "13")},
				{Name: "cppstd", Values: values("11", "14", "17", "20")},
			}},
			{Value: "msvc", Fields: []domain.SchemaField{
				{Name: "version", Values: values("192", "193")},
			}},
		}},
		{Name: "build_type", Values: values("Debug", "Release")},
	})
	require.NoError(t, err)
	return schema
}

func linuxProfile() *domain.Profile {
	return &domain.Profile{
		Name: "linux",
		Settings: []domain.KeyValue{
			{Key: "os", Value: "Linux"},
			{Key: "arch", Value: "x86_64"},
			{Key: "compiler", Value: "gcc"},
			{Key: "compiler.version", Value: "13"},
			{Key: "build_type", Value: "Release"},
		},
	}
}

func windowsProfile() *domain.Profile {
	return &domain.Profile{
		Name: "windows",
		Settings: []domain.KeyValue{
			{Key: "os", Value: "Windows"},
			{Key: "arch", Value: "x86_64"},
			{Key: "compiler", Value: "msvc"},
			{Key: "compiler.version", Value: "193"},
			{Key: "build_type", Value: "Release"},
		},
	}
}

func requires(t *testing.T, refs ...string) []domain.Requirement {
	t.Helper()
	out := make([]domain.Requirement, 0, len(refs))
	for _, ref := range refs {
		req, err := domain.ParseRequirement(ref)
		require.NoError(t, err)
		out = append(out, req)
	}
	return out
}

func request(t *testing.T, refs ...string) graphbuilder.Request {
	t.Helper()
	return graphbuilder.Request{
		Consumer:    &domain.Consumer{Requires: requires(t, refs...)},
		HostProfile: linuxProfile(),
		Schema:      testSchema(t),
	}
}

func build(t *testing.T, oracle *fakes.Oracle, req graphbuilder.Request) (*domain.Graph, error) {
	t.Helper()
	return graphbuilder.New(oracle, nil).Build(context.Background(), req)
}

func findNode(g *domain.Graph, name string, ctx domain.Context) *domain.Node {
	for _, n := range g.Nodes() {
		if !n.Virtual && n.Ref.Name == name && n.Context == ctx {
			return n
		}
	}
	return nil
}

func countNodes(g *domain.Graph, name string) int {
	count := 0
	for _, n := range g.Nodes() {
		if !n.Virtual && n.Ref.Name == name {
			count++
		}
	}
	return count
}

func metadata(t *testing.T, err error) map[string]any {
	t.Helper()
	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	return zErr.Metadata()
}

// render prints the graph one node per line, followed by its edges.
func render(g *domain.Graph) string {
	var b strings.Builder
	for _, n := range g.Nodes() {
		label := "virtual"
		if !n.Virtual {
			label = n.Ref.WithoutRevision().String() + " (" + n.Context.String() + ")"
		}
		fmt.Fprintf(&b, "%d %s\n", n.ID, label)
		for _, e := range n.Dependencies {
			fmt.Fprintf(&b, "  -> %d %s\n", e.Dst.ID, e.Require)
		}
	}
	return b.String()
}
