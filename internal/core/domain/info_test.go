package domain_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/internal/core/domain"
)

const zlibID = "5ab84d6acfe1f23c4fae0ab88f26e3a396351ac9"

func testPackageInfo(compilerVersion string) *domain.PackageInfo {
	return domain.NewPackageInfo(
		[]domain.KeyValue{
			{Key: "os", Value: "Linux"},
			{Key: "arch", Value: "x86_64"},
			{Key: "compiler", Value: "gcc"},
			{Key: "compiler.version", Value: compilerVersion},
		},
		[]domain.KeyValue{
			{Key: "shared", Value: "False"},
			{Key: "fPIC", Value: "True"},
		},
		[]domain.RequireInfo{
			{Ref: domain.MustParseReference("zlib/1.2.13#r1"), PackageID: zlibID, Mode: domain.FullPackageMode},
			{Ref: domain.MustParseReference("openssl/3.0.8"), PackageID: "ffff", Mode: domain.SemverMode},
		},
	)
}

func TestPackageInfo_Dumps(t *testing.T) {
	info := testPackageInfo("11")
	info.Settings.Set("compiler.version", domain.AnyInfoValue)

	g := goldie.New(t)
	g.Assert(t, "package_info_dumps", []byte(info.Dumps()))
}

func TestPackageInfo_AnyErasesDifferences(t *testing.T) {
	gcc10 := testPackageInfo("10")
	gcc11 := testPackageInfo("11")
	require.NotEqual(t, gcc10.PackageID(), gcc11.PackageID())

	gcc10.Settings.Set("compiler.version", domain.AnyInfoValue)
	gcc11.Settings.Set("compiler.version", domain.AnyInfoValue)
	assert.Equal(t, gcc10.PackageID(), gcc11.PackageID())
}

func TestPackageInfo_Sensitivity(t *testing.T) {
	base := testPackageInfo("11")
	id := base.PackageID()
	assert.Len(t, id, 40)
	assert.Equal(t, id, testPackageInfo("11").PackageID())

	tests := []struct {
		name   string
		mutate func(*domain.PackageInfo)
	}{
		{name: "setting", mutate: func(p *domain.PackageInfo) { p.Settings.Set("os", "Windows") }},
		{name: "option", mutate: func(p *domain.PackageInfo) { p.Options.Set("shared", "True") }},
		{name: "dependency package id", mutate: func(p *domain.PackageInfo) { p.Requires.Get("zlib").PackageID = "0000" }},
		{name: "dependency removed", mutate: func(p *domain.PackageInfo) { p.Requires.Remove("zlib") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := base.Clone()
			tt.mutate(info)
			assert.NotEqual(t, id, info.PackageID())
		})
	}

	assert.Equal(t, id, base.PackageID(), "clones must not alias the original")
}

func TestPackageInfo_ModeChangesContribution(t *testing.T) {
	info := testPackageInfo("11")
	full := info.PackageID()

	// Only the major version of openssl contributes in semver mode.
	bumped := info.Clone()
	bumped.Requires.Get("openssl").Ref = domain.MustParseReference("openssl/3.1.0")
	assert.Equal(t, full, bumped.PackageID())

	info.Requires.SetMode(domain.UnrelatedMode)
	assert.Equal(t, "[settings]\n    arch=x86_64\n    compiler=gcc\n    compiler.version=11\n    os=Linux\n"+
		"[options]\n    fPIC=True\n    shared=False\n[requires]\n", info.Dumps())
}

func TestInfoValues_Remove(t *testing.T) {
	info := testPackageInfo("11")
	info.Settings.Remove("compiler")

	assert.Equal(t, []domain.KeyValue{
		{Key: "os", Value: "Linux"},
		{Key: "arch", Value: "x86_64"},
	}, info.Settings.Values())

	info.Options.Clear()
	assert.Empty(t, info.Options.Values())
}

func TestRequireInfo_Dumps(t *testing.T) {
	ref := domain.MustParseReference("zlib/1.2.13@acme/stable#r1")
	tests := []struct {
		mode domain.PackageIDMode
		want string
	}{
		{mode: domain.UnrelatedMode, want: ""},
		{mode: domain.SemverMode, want: "zlib/1.Y.Z@acme/stable"},
		{mode: domain.FullVersionMode, want: "zlib/1.2.13@acme/stable"},
		{mode: domain.FullPackageMode, want: "zlib/1.2.13@acme/stable:abc"},
		{mode: domain.RecipeRevisionMode, want: "zlib/1.2.13@acme/stable#r1:abc"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			info := domain.RequireInfo{Ref: ref, PackageID: "abc", Mode: tt.mode}
			assert.Equal(t, tt.want, info.Dumps())
		})
	}
}

func TestParsePackageIDMode(t *testing.T) {
	mode, err := domain.ParsePackageIDMode("semver_mode")
	require.NoError(t, err)
	assert.Equal(t, domain.SemverMode, mode)

	mode, err = domain.ParsePackageIDMode("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPackageIDMode, mode)

	_, err = domain.ParsePackageIDMode("random_mode")
	require.ErrorIs(t, err, domain.ErrUnknownPackageIDMode)
}
