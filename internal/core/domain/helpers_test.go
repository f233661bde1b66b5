package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/internal/core/domain"
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
	gcc := []domain.SchemaField{
		{Name: "version", Values: values("9", "10", "11")},
		{Name: "libcxx", Values: values("libstdc++", "libstdc++11")},
		{Name: "cppstd", Values: values("98", "11", "14", "17", "20", "23")},
	}
	clang := []domain.SchemaField{
		{Name: "version", Values: values("14", "15")},
		{Name: "libcxx", Values: values("libstdc++", "libc++")},
	}
	schema, err := domain.NewSettingsSchema([]domain.SchemaField{
		{Name: "os", Values: values("Windows", "Linux", "Macos")},
		{Name: "arch", Values: values("x86", "x86_64", "armv8")},
		{Name: "compiler", Values: []domain.SchemaValue{
			{Value: "gcc", Fields: gcc},
			{Value: "clang", Fields: clang},
		}},
		{Name: "build_type", Values: values("Debug", "Release")},
		{Name: "user_tag", Any: true},
	})
	require.NoError(t, err)
	return schema
}

func linuxGCC(t *testing.T, schema *domain.SettingsSchema) *domain.Settings {
	t.Helper()
	s := domain.NewSettings(schema)
	for _, kv := range []domain.KeyValue{
		{Key: "build_type", Value: "Release"},
		{Key: "compiler", Value: "gcc"},
		{Key: "compiler.cppstd", Value: "17"},
		{Key: "compiler.libcxx", Value: "libstdc++11"},
		{Key: "compiler.version", Value: "11"},
		{Key: "arch", Value: "x86_64"},
		{Key: "os", Value: "Linux"},
	} {
		require.NoError(t, s.Set(kv.Key, kv.Value))
	}
	return s
}
