package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/internal/core/domain"
)

func testOptionDefs() []domain.OptionDef {
	return []domain.OptionDef{
		{Name: "shared", Values: []string{"True", "False"}, Default: "False", HasDefault: true},
		{Name: "fPIC", Values: []string{"True", "False"}, Default: "True", HasDefault: true},
		{Name: "namespace", Any: true},
	}
}

func TestNewOptions_Defaults(t *testing.T) {
	o, err := domain.NewOptions(testOptionDefs())
	require.NoError(t, err)

	assert.Equal(t, []domain.KeyValue{
		{Key: "fPIC", Value: "True"},
		{Key: "shared", Value: "False"},
	}, o.Values())
	assert.True(t, o.Has("namespace"))
	_, ok := o.Get("namespace")
	assert.False(t, ok)
}

func TestNewOptions_Invalid(t *testing.T) {
	_, err := domain.NewOptions([]domain.OptionDef{
		{Name: "shared", Values: []string{"True"}},
		{Name: "shared", Values: []string{"False"}},
	})
	require.ErrorIs(t, err, domain.ErrSchema)

	_, err = domain.NewOptions([]domain.OptionDef{
		{Name: "shared", Values: []string{"True", "False"}, Default: "Maybe", HasDefault: true},
	})
	require.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestOptions_Set(t *testing.T) {
	o, err := domain.NewOptions(testOptionDefs())
	require.NoError(t, err)

	require.NoError(t, o.Set("shared", "True"))
	require.NoError(t, o.Set("namespace", "acme"))
	require.ErrorIs(t, o.Set("shared", "Maybe"), domain.ErrInvalidValue)
	require.ErrorIs(t, o.Set("static", "True"), domain.ErrUndefinedValue)

	require.NoError(t, o.Remove("fPIC"))
	assert.False(t, o.Has("fPIC"))
	assert.Equal(t, []domain.KeyValue{
		{Key: "namespace", Value: "acme"},
		{Key: "shared", Value: "True"},
	}, o.Values())
}

func TestOptions_Freeze(t *testing.T) {
	o, err := domain.NewOptions(testOptionDefs())
	require.NoError(t, err)

	o.Freeze()
	assert.True(t, o.Frozen())
	require.ErrorIs(t, o.Set("shared", "True"), domain.ErrOptionsFrozen)
	require.ErrorIs(t, o.Remove("fPIC"), domain.ErrOptionsFrozen)

	c := o.Copy()
	assert.False(t, c.Frozen())
	require.NoError(t, c.Set("shared", "True"))
	v, _ := o.Get("shared")
	assert.Equal(t, "False", v)
}

func TestOptions_PropagateDownstream(t *testing.T) {
	assignments := []domain.OptionAssignment{
		{Pattern: "zlib", Name: "shared", Value: "False"},
		{Pattern: "*", Name: "shared", Value: "True"},
		{Pattern: "*", Name: "with_zstd", Value: "True"},
	}

	t.Run("explicit pattern wins over wildcard", func(t *testing.T) {
		o, err := domain.NewOptions(testOptionDefs())
		require.NoError(t, err)
		require.NoError(t, o.Set("shared", "True"))
		require.NoError(t, o.PropagateDownstream(assignments, domain.MustParseReference("zlib/1.2.13")))
		v, _ := o.Get("shared")
		assert.Equal(t, "False", v)
	})

	t.Run("wildcard applies to other packages", func(t *testing.T) {
		o, err := domain.NewOptions(testOptionDefs())
		require.NoError(t, err)
		require.NoError(t, o.PropagateDownstream(assignments, domain.MustParseReference("boost/1.82.0")))
		v, _ := o.Get("shared")
		assert.Equal(t, "True", v)
	})

	t.Run("unknown option with explicit pattern fails", func(t *testing.T) {
		o, err := domain.NewOptions(testOptionDefs())
		require.NoError(t, err)
		err = o.PropagateDownstream([]domain.OptionAssignment{{Pattern: "zlib", Name: "with_zstd", Value: "True"}},
			domain.MustParseReference("zlib/1.2.13"))
		require.ErrorIs(t, err, domain.ErrUndefinedValue)
		assert.Contains(t, err.Error(), "zlib/1.2.13")
	})

	t.Run("empty pattern addresses the package itself", func(t *testing.T) {
		o, err := domain.NewOptions(testOptionDefs())
		require.NoError(t, err)
		require.NoError(t, o.PropagateDownstream([]domain.OptionAssignment{{Name: "shared", Value: "True"}},
			domain.MustParseReference("zlib/1.2.13")))
		v, _ := o.Get("shared")
		assert.Equal(t, "True", v)
	})
}

func TestParseOptionAssignment(t *testing.T) {
	tests := []struct {
		text string
		want domain.OptionAssignment
	}{
		{text: "zlib:shared=True", want: domain.OptionAssignment{Pattern: "zlib", Name: "shared", Value: "True"}},
		{text: "*:fPIC=False", want: domain.OptionAssignment{Pattern: "*", Name: "fPIC", Value: "False"}},
		{text: "shared=True", want: domain.OptionAssignment{Name: "shared", Value: "True"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := domain.ParseOptionAssignment(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, got.String())
		})
	}

	for _, bad := range []string{"shared", ":shared=True", "zlib:=True"} {
		t.Run(bad, func(t *testing.T) {
			_, err := domain.ParseOptionAssignment(bad)
			require.ErrorIs(t, err, domain.ErrInvalidValue)
		})
	}
}
