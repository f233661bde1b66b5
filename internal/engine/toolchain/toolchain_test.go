package toolchain_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/engine/toolchain"
)

func sampleView() domain.ComponentView {
	return domain.ComponentView{
		Name:        "openssl",
		IncludeDirs: []string{"/opt/openssl/include"},
		LibDirs:     []string{"/opt/openssl/lib"},
		Libs:        []string{"ssl", "crypto"},
		SystemLibs:  []string{"pthread"},
		Defines:     []string{"OPENSSL_API=30000"},
		CxxFlags:    []string{"-fvisibility=hidden"},
	}
}

func TestToolchain_Flags(t *testing.T) {
	reg := toolchain.DefaultRegistry()

	tests := []struct {
		name     string
		os       string
		compiler string
		cppstd   string
		want     toolchain.Flags
	}{
		{
			name: "linux gcc", os: "Linux", compiler: "gcc", cppstd: "gnu17",
			want: toolchain.Flags{
				CppFlags: []string{"-I/opt/openssl/include", "-DOPENSSL_API=30000"},
				CxxFlags: []string{"-std=gnu++17", "-fvisibility=hidden"},
				LdFlags:  []string{"-L/opt/openssl/lib", "-Wl,-rpath,/opt/openssl/lib"},
				Libs:     []string{"-lssl", "-lcrypto", "-lpthread"},
			},
		},
		{
			name: "windows msvc", os: "Windows", compiler: "msvc", cppstd: "23",
			want: toolchain.Flags{
				CppFlags: []string{"/I/opt/openssl/include", "/DOPENSSL_API=30000"},
				CxxFlags: []string{"/std:c++latest", "-fvisibility=hidden"},
				LdFlags:  []string{"/LIBPATH:/opt/openssl/lib"},
				Libs:     []string{"ssl.lib", "crypto.lib", "pthread.lib"},
			},
		},
		{
			name: "macos apple-clang without standard", os: "Macos", compiler: "apple-clang",
			want: toolchain.Flags{
				CppFlags: []string{"-I/opt/openssl/include", "-DOPENSSL_API=30000"},
				CxxFlags: []string{"-fvisibility=hidden"},
				LdFlags:  []string{"-L/opt/openssl/lib", "-Wl,-rpath,/opt/openssl/lib"},
				Libs:     []string{"-lssl", "-lcrypto", "-lpthread"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, err := reg.Toolchain(tt.os, tt.compiler, "text")
			require.NoError(t, err)
			assert.Equal(t, tt.want, tc.Flags(sampleView(), tt.cppstd))
		})
	}
}

func TestToolchain_Formats(t *testing.T) {
	reg := toolchain.DefaultRegistry()
	assert.Equal(t, []string{"env", "text", "yaml"}, reg.Formats())

	g := goldie.New(t)
	for _, format := range reg.Formats() {
		t.Run(format, func(t *testing.T) {
			tc, err := reg.Toolchain("Linux", "gcc", format)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, tc.Render(&buf, sampleView(), "17"))
			g.Assert(t, "flags_"+format, buf.Bytes())
		})
	}
}

func TestRegistry_Unknown(t *testing.T) {
	reg := toolchain.DefaultRegistry()

	for _, args := range [][3]string{
		{"Haiku", "gcc", "text"},
		{"Linux", "tcc", "text"},
		{"Linux", "gcc", "json"},
	} {
		_, err := reg.Toolchain(args[0], args[1], args[2])
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnknownToolchain))
	}
}

func settingsOf(info *domain.PackageInfo) string {
	v, ok := info.Settings.Get("compiler.cppstd")
	if !ok {
		return "<unset>"
	}
	return v
}

func TestRegistry_CppstdVariants(t *testing.T) {
	reg := toolchain.DefaultRegistry()

	info := domain.NewPackageInfo([]domain.KeyValue{
		{Key: "compiler", Value: "gcc"},
		{Key: "compiler.version", Value: "9"},
		{Key: "compiler.cppstd", Value: "17"},
	}, nil, nil)

	variants := reg.CppstdVariants(info)
	got := make([]string, 0, len(variants))
	for _, v := range variants {
		got = append(got, settingsOf(v))
	}
	// gcc 9 defaults to gnu14, which is represented as unset.
	assert.Equal(t, []string{"98", "11", "<unset>", "20"}, got)
	assert.Equal(t, "17", settingsOf(info), "the requested info is untouched")
}

func TestRegistry_CppstdVariants_UnsetMeansDefault(t *testing.T) {
	reg := toolchain.DefaultRegistry()

	info := domain.NewPackageInfo([]domain.KeyValue{
		{Key: "compiler", Value: "msvc"},
		{Key: "compiler.version", Value: "192"},
	}, nil, nil)

	variants := reg.CppstdVariants(info)
	got := make([]string, 0, len(variants))
	for _, v := range variants {
		got = append(got, settingsOf(v))
	}
	assert.Equal(t, []string{"17", "20"}, got)
}

func TestRegistry_CppstdVariants_UnknownCompiler(t *testing.T) {
	reg := toolchain.DefaultRegistry()
	assert.Nil(t, reg.CppstdVariants(domain.NewPackageInfo(nil, nil, nil)))

	info := domain.NewPackageInfo([]domain.KeyValue{{Key: "compiler", Value: "tcc"}}, nil, nil)
	assert.Nil(t, reg.CppstdVariants(info))
}

func TestRegistry_Cppstd(t *testing.T) {
	reg := toolchain.DefaultRegistry()
	schema, err := domain.NewSettingsSchema([]domain.SchemaField{{
		Name: "compiler",
		Values: []domain.SchemaValue{{
			Value: "gcc",
			Fields: []domain.SchemaField{
				{Name: "version", Any: true},
				{Name: "cppstd", Any: true},
			},
		}},
	}})
	require.NoError(t, err)

	s := domain.NewSettings(schema)
	require.NoError(t, s.Set("compiler", "gcc"))
	require.NoError(t, s.Set("compiler.version", "13"))
	assert.Equal(t, "gnu17", reg.Cppstd(s))

	require.NoError(t, s.Set("compiler.cppstd", "20"))
	assert.Equal(t, "20", reg.Cppstd(s))
}
