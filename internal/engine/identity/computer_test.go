package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports/fakes"
	"go.trai.ch/keel/internal/engine/graphbuilder"
	"go.trai.ch/keel/internal/engine/identity"
	"go.trai.ch/zerr"
)

var allSettings = []string{"os", "compiler", "build_type"}

func TestCompute_AnyCompilerVersion(t *testing.T) {
	oracle := fakes.NewOracle().Add("lib/1.0", &fakes.Recipe{
		Settings: allSettings,
		PackageIDFunc: func(info *domain.PackageInfo) error {
			info.Settings.Set("compiler.version", domain.AnyInfoValue)
			return nil
		},
	})

	g13, err := resolve(t, oracle, profile(), "", "lib/1.0")
	require.NoError(t, err)
	g12, err := resolve(t, oracle, profile(domain.KeyValue{Key: "compiler.version", Value: "12"}), "", "lib/1.0")
	require.NoError(t, err)

	lib13 := node(t, g13, "lib", domain.ContextHost)
	lib12 := node(t, g12, "lib", domain.ContextHost)
	assert.Equal(t, lib13.PackageID(), lib12.PackageID())
	assert.Len(t, lib13.PackageID(), 40)

	version, _ := lib12.Settings.Get("compiler.version")
	assert.Equal(t, "12", version, "the hook must not touch the node settings")
}

func TestCompute_StableUnderPrunedSettings(t *testing.T) {
	oracle := fakes.NewOracle().Add("headers/1.0", &fakes.Recipe{
		Settings:       allSettings,
		RemoveSettings: []string{"build_type"},
	})

	release, err := resolve(t, oracle, profile(), "", "headers/1.0")
	require.NoError(t, err)
	debug, err := resolve(t, oracle, profile(domain.KeyValue{Key: "build_type", Value: "Debug"}), "", "headers/1.0")
	require.NoError(t, err)

	assert.Equal(t,
		node(t, release, "headers", domain.ContextHost).PackageID(),
		node(t, debug, "headers", domain.ContextHost).PackageID())
}

func TestCompute_Sensitivity(t *testing.T) {
	boolean := []string{"True", "False"}
	oracle := fakes.NewOracle().
		Add("app/1.0", &fakes.Recipe{Settings: allSettings, Requires: []string{"zlib/1.3"}}).
		Add("zlib/1.3", &fakes.Recipe{
			Settings: allSettings,
			Options:  []domain.OptionDef{{Name: "shared", Values: boolean, Default: "False", HasDefault: true}},
		})

	static := profile()
	shared := profile()
	shared.Options = []domain.OptionAssignment{{Pattern: "zlib", Name: "shared", Value: "True"}}

	tests := []struct {
		name    string
		mode    domain.PackageIDMode
		appSame bool
	}{
		{name: "full package mode", mode: domain.FullPackageMode, appSame: false},
		{name: "default mode", mode: "", appSame: false},
		{name: "semver mode", mode: domain.SemverMode, appSame: true},
		{name: "unrelated mode", mode: domain.UnrelatedMode, appSame: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := resolve(t, oracle, static, tt.mode, "app/1.0")
			require.NoError(t, err)
			b, err := resolve(t, oracle, shared, tt.mode, "app/1.0")
			require.NoError(t, err)

			assert.NotEqual(t,
				node(t, a, "zlib", domain.ContextHost).PackageID(),
				node(t, b, "zlib", domain.ContextHost).PackageID())

			appA := node(t, a, "app", domain.ContextHost).PackageID()
			appB := node(t, b, "app", domain.ContextHost).PackageID()
			if tt.appSame {
				assert.Equal(t, appA, appB)
			} else {
				assert.NotEqual(t, appA, appB)
			}
		})
	}

	t.Run("settings", func(t *testing.T) {
		a, err := resolve(t, oracle, profile(), "", "zlib/1.3")
		require.NoError(t, err)
		b, err := resolve(t, oracle, profile(domain.KeyValue{Key: "os", Value: "Windows"}), "", "zlib/1.3")
		require.NoError(t, err)

		assert.NotEqual(t,
			node(t, a, "zlib", domain.ContextHost).PackageID(),
			node(t, b, "zlib", domain.ContextHost).PackageID())
	})
}

func TestCompute_HookDoesNotLeakIntoDependencies(t *testing.T) {
	plain := fakes.NewOracle().
		Add("app/1.0", &fakes.Recipe{Requires: []string{"zlib/1.3"}}).
		Add("zlib/1.3", &fakes.Recipe{Settings: allSettings})
	hooked := fakes.NewOracle().
		Add("app/1.0", &fakes.Recipe{
			Requires: []string{"zlib/1.3"},
			PackageIDFunc: func(info *domain.PackageInfo) error {
				dep := info.Requires.Get("zlib")
				require.NotNil(t, dep)
				dep.Mode = domain.UnrelatedMode
				dep.PackageID = "tampered"
				return nil
			},
		}).
		Add("zlib/1.3", &fakes.Recipe{Settings: allSettings})

	a, err := resolve(t, plain, profile(), "", "app/1.0")
	require.NoError(t, err)
	b, err := resolve(t, hooked, profile(), "", "app/1.0")
	require.NoError(t, err)

	assert.Equal(t,
		node(t, a, "zlib", domain.ContextHost).PackageID(),
		node(t, b, "zlib", domain.ContextHost).PackageID())
	assert.NotEqual(t,
		node(t, a, "app", domain.ContextHost).PackageID(),
		node(t, b, "app", domain.ContextHost).PackageID())

	appB := node(t, b, "app", domain.ContextHost)
	assert.Equal(t, domain.UnrelatedMode, appB.Info.Requires.Get("zlib").Mode)
	assert.True(t, appB.Options.Frozen())
}

func TestCompute_PrivateAndBuildRequiresAreExcluded(t *testing.T) {
	oracle := fakes.NewOracle().
		Add("app/1.0", &fakes.Recipe{
			Requires:      []string{"zlib/1.3"},
			Private:       []string{"fmt/10.0"},
			BuildRequires: []string{"cmake/3.27.0"},
		}).
		Add("zlib/1.3", &fakes.Recipe{}).
		Add("fmt/10.0", &fakes.Recipe{}).
		Add("cmake/3.27.0", &fakes.Recipe{})

	g, err := resolve(t, oracle, profile(), "", "app/1.0")
	require.NoError(t, err)

	items := node(t, g, "app", domain.ContextHost).Info.Requires.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "zlib", items[0].Ref.Name)
	assert.Equal(t, node(t, g, "zlib", domain.ContextHost).PackageID(), items[0].PackageID)
}

func TestCompute_CompatibleVariants(t *testing.T) {
	oracle := fakes.NewOracle().Add("lib/1.0", &fakes.Recipe{
		Settings: allSettings,
		Cppstd:   true,
		CompatibilityFunc: func(info *domain.PackageInfo) ([]*domain.PackageInfo, error) {
			debug := info.Clone()
			debug.Settings.Set("build_type", "Debug")
			return []*domain.PackageInfo{debug, info.Clone()}, nil
		},
	})

	g, err := resolve(t, oracle, profile(domain.KeyValue{Key: "compiler.cppstd", Value: "20"}), "", "lib/1.0")
	require.NoError(t, err)

	lib := node(t, g, "lib", domain.ContextHost)
	require.Len(t, lib.Compatible, 6)

	buildType, _ := lib.Compatible[0].Settings.Get("build_type")
	assert.Equal(t, "Debug", buildType)

	var stds []string
	for _, v := range lib.Compatible[1:] {
		std, ok := v.Settings.Get("compiler.cppstd")
		if !ok {
			std = "default"
		}
		stds = append(stds, std)
	}
	assert.Equal(t, []string{"98", "11", "14", "default", "23"}, stds)

	ids := map[string]bool{lib.PackageID(): true}
	for _, v := range lib.Compatible {
		assert.False(t, ids[v.PackageID()], "variant ids must be unique")
		ids[v.PackageID()] = true
	}
}

func TestCompute_HookError(t *testing.T) {
	errBoom := errors.New("boom")
	oracle := fakes.NewOracle().Add("lib/1.0", &fakes.Recipe{
		PackageIDFunc: func(*domain.PackageInfo) error { return errBoom },
	})

	_, err := resolve(t, oracle, profile(), "", "lib/1.0")
	require.ErrorIs(t, err, domain.ErrRecipeHook)
	require.ErrorIs(t, err, errBoom)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "package_id", zErr.Metadata()["hook"])
	assert.Equal(t, "lib/1.0#r1", zErr.Metadata()["reference"])
}

func TestCompute_Cancelled(t *testing.T) {
	oracle := fakes.NewOracle().Add("lib/1.0", &fakes.Recipe{})
	req, err := domain.ParseRequirement("lib/1.0")
	require.NoError(t, err)
	g, err := graphbuilder.New(oracle, nil).Build(context.Background(), graphbuilder.Request{
		Consumer:    &domain.Consumer{Requires: []domain.Requirement{req}},
		HostProfile: profile(),
		Schema:      testSchema(t),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = identity.NewComputer(nil).Compute(ctx, g, "")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, node(t, g, "lib", domain.ContextHost).PackageID())
}
