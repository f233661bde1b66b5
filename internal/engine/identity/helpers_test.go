package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports/fakes"
	"go.trai.ch/keel/internal/engine/graphbuilder"
	"go.trai.ch/keel/internal/engine/identity"
	"go.trai.ch/keel/internal/engine/toolchain"
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
		{Name: "os", Values: values("Linux", "Windows")},
		{Name: "compiler", Values: []domain.SchemaValue{
			{Value: "gcc", Fields: []domain.SchemaField{
				{Name: "version", Values: values("11", "12", "13")},
				{Name: "cppstd", Values: values("98", "11", "14", "17", "20", "23")},
			}},
		}},
		{Name: "build_type", Values: values("Debug", "Release")},
	})
	require.NoError(t, err)
	return schema
}

// profile builds a gcc profile; extra settings override the defaults.
func profile(extra ...domain.KeyValue) *domain.Profile {
	p := &domain.Profile{Name: "default", Settings: []domain.KeyValue{
		{Key: "os", Value: "Linux"},
		{Key: "compiler", Value: "gcc"},
		{Key: "compiler.version", Value: "13"},
		{Key: "build_type", Value: "Release"},
	}}
	for _, kv := range extra {
		p.SetSetting(kv.Key, kv.Value)
	}
	return p
}

// resolve builds and identifies the graph of refs.
func resolve(t *testing.T, oracle *fakes.Oracle, p *domain.Profile, mode domain.PackageIDMode, refs ...string) (*domain.Graph, error) {
	t.Helper()
	reqs := make([]domain.Requirement, 0, len(refs))
	for _, ref := range refs {
		req, err := domain.ParseRequirement(ref)
		require.NoError(t, err)
		reqs = append(reqs, req)
	}
	g, err := graphbuilder.New(oracle, nil).Build(context.Background(), graphbuilder.Request{
		Consumer:    &domain.Consumer{Requires: reqs},
		HostProfile: p,
		Schema:      testSchema(t),
	})
	require.NoError(t, err)

	err = identity.NewComputer(toolchain.DefaultRegistry()).Compute(context.Background(), g, mode)
	return g, err
}

func node(t *testing.T, g *domain.Graph, name string, ctx domain.Context) *domain.Node {
	t.Helper()
	for _, n := range g.Nodes() {
		if !n.Virtual && n.Ref.Name == name && n.Context == ctx {
			return n
		}
	}
	t.Fatalf("node %s (%s) not found", name, ctx)
	return nil
}
