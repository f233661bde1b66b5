package domain_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/internal/core/domain"
)

func TestSettings_Dumps(t *testing.T) {
	s := linuxGCC(t, testSchema(t))

	g := goldie.New(t)
	g.Assert(t, "settings_dumps", []byte(s.Dumps()))
}

func TestSettings_RoundTrip(t *testing.T) {
	schema := testSchema(t)
	s := linuxGCC(t, schema)
	require.NoError(t, s.Set("user_tag", "nightly build"))

	loaded, err := domain.LoadSettings(schema, s.Dumps())
	require.NoError(t, err)
	assert.True(t, s.Equal(loaded))
	assert.Equal(t, s.Values(), loaded.Values())
}

func TestSettings_Set(t *testing.T) {
	schema := testSchema(t)

	t.Run("sub-setting requires its parent", func(t *testing.T) {
		s := domain.NewSettings(schema)
		err := s.Set("compiler.version", "11")
		require.ErrorIs(t, err, domain.ErrUndefinedValue)
		assert.Contains(t, err.Error(), "compiler.version")
	})

	t.Run("unknown setting", func(t *testing.T) {
		s := domain.NewSettings(schema)
		require.ErrorIs(t, s.Set("kernel", "6"), domain.ErrUndefinedValue)
	})

	t.Run("value outside enumeration", func(t *testing.T) {
		s := domain.NewSettings(schema)
		err := s.Set("os", "Solaris")
		require.ErrorIs(t, err, domain.ErrInvalidValue)
		assert.Contains(t, err.Error(), "os=Solaris")
	})

	t.Run("sub-setting of the other value", func(t *testing.T) {
		s := domain.NewSettings(schema)
		require.NoError(t, s.Set("compiler", "clang"))
		require.ErrorIs(t, s.Set("compiler.cppstd", "17"), domain.ErrUndefinedValue)
	})

	t.Run("any accepts free values", func(t *testing.T) {
		s := domain.NewSettings(schema)
		require.NoError(t, s.Set("user_tag", "whatever"))
		v, ok := s.Get("user_tag")
		assert.True(t, ok)
		assert.Equal(t, "whatever", v)
	})

	t.Run("changing a parent drops its children", func(t *testing.T) {
		s := linuxGCC(t, schema)
		require.NoError(t, s.Set("compiler", "clang"))
		_, ok := s.Get("compiler.version")
		assert.False(t, ok)
		require.NoError(t, s.Set("compiler.version", "15"))
		assert.Equal(t, "os=Linux\narch=x86_64\ncompiler=clang\ncompiler.version=15\nbuild_type=Release", s.Dumps())
	})

	t.Run("setting the same value keeps children", func(t *testing.T) {
		s := linuxGCC(t, schema)
		require.NoError(t, s.Set("compiler", "gcc"))
		v, _ := s.Get("compiler.version")
		assert.Equal(t, "11", v)
	})
}

func TestSettings_Remove(t *testing.T) {
	s := linuxGCC(t, testSchema(t))
	s.Remove("compiler.cppstd")

	assert.NotContains(t, s.Dumps(), "cppstd")
	require.ErrorIs(t, s.Set("compiler.cppstd", "17"), domain.ErrUndefinedValue)

	s.Remove("compiler")
	assert.Equal(t, "os=Linux\narch=x86_64\nbuild_type=Release", s.Dumps())
}

func TestSettings_Constrain(t *testing.T) {
	s := linuxGCC(t, testSchema(t))

	require.NoError(t, s.Constrain("compiler.version", []string{"10", "11"}))
	require.ErrorIs(t, s.Set("compiler.version", "9"), domain.ErrInvalidValue)
	require.NoError(t, s.Set("compiler.version", "10"))

	require.ErrorIs(t, s.Constrain("compiler.version", []string{"12"}), domain.ErrInvalidValue)
	require.ErrorIs(t, s.Constrain("build_type", []string{"Debug"}), domain.ErrInvalidValue)
}

func TestSettings_Restrict(t *testing.T) {
	s := linuxGCC(t, testSchema(t))

	r, err := s.Restrict([]string{"os", "build_type"})
	require.NoError(t, err)
	assert.Equal(t, "os=Linux\nbuild_type=Release", r.Dumps())
	require.ErrorIs(t, r.Set("compiler", "clang"), domain.ErrUndefinedValue)

	// The original is untouched.
	v, ok := s.Get("compiler")
	assert.True(t, ok)
	assert.Equal(t, "gcc", v)

	_, err = s.Restrict([]string{"kernel"})
	require.ErrorIs(t, err, domain.ErrUndefinedValue)
}

func TestSettings_Copy(t *testing.T) {
	s := linuxGCC(t, testSchema(t))
	c := s.Copy()
	require.NoError(t, c.Set("build_type", "Debug"))

	assert.False(t, s.Equal(c))
	v, _ := s.Get("build_type")
	assert.Equal(t, "Release", v)
}

func TestNewSettingsSchema_Errors(t *testing.T) {
	tests := []struct {
		name   string
		fields []domain.SchemaField
	}{
		{
			name: "duplicate key",
			fields: []domain.SchemaField{
				{Name: "os", Values: values("Linux")},
				{Name: "os", Values: values("Windows")},
			},
		},
		{
			name:   "no values",
			fields: []domain.SchemaField{{Name: "os"}},
		},
		{
			name:   "duplicate value",
			fields: []domain.SchemaField{{Name: "os", Values: values("Linux", "Linux")}},
		},
		{
			name: "nested error",
			fields: []domain.SchemaField{{Name: "compiler", Values: []domain.SchemaValue{
				{Value: "gcc", Fields: []domain.SchemaField{{Name: "version"}}},
			}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewSettingsSchema(tt.fields)
			require.ErrorIs(t, err, domain.ErrSchema)
		})
	}
}

func TestLoadSettings_Malformed(t *testing.T) {
	_, err := domain.LoadSettings(testSchema(t), "os=Linux\nnonsense")
	require.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestSettingsSchema_Fields(t *testing.T) {
	assert.Equal(t, []string{"os", "arch", "compiler", "build_type", "user_tag"}, testSchema(t).Fields())
}
