package oraclecache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/internal/adapters/oraclecache"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestOracle_MemoizesSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockOracle(ctrl)
	ctx := context.Background()
	zlib := domain.MustParseReference("zlib/1.2.13")
	recipe := mocks.NewMockRecipe(ctrl)

	next.EXPECT().ListVersions(ctx, zlib).Return([]string{"1.2.13", "1.2.11"}, nil).Times(1)
	next.EXPECT().RecipeFor(ctx, zlib).Return(recipe, nil).Times(1)
	next.EXPECT().LatestRevision(ctx, zlib).Return("r1", nil).Times(1)
	bref := domain.BinaryReference{Ref: zlib.WithRevision("r1"), PackageID: "pid"}
	next.EXPECT().BinaryExists(ctx, bref).Return(true, nil).Times(1)

	o, err := oraclecache.New(next, 8)
	require.NoError(t, err)

	for range 3 {
		versions, err := o.ListVersions(ctx, zlib)
		require.NoError(t, err)
		assert.Equal(t, []string{"1.2.13", "1.2.11"}, versions)

		got, err := o.RecipeFor(ctx, zlib)
		require.NoError(t, err)
		assert.Same(t, recipe, got)

		rev, err := o.LatestRevision(ctx, zlib)
		require.NoError(t, err)
		assert.Equal(t, "r1", rev)

		ok, err := o.BinaryExists(ctx, bref)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestOracle_ReturnedVersionsAreCopies(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockOracle(ctrl)
	ctx := context.Background()
	zlib := domain.MustParseReference("zlib/1.2.13")
	next.EXPECT().ListVersions(ctx, zlib).Return([]string{"1.0", "2.0"}, nil).Times(1)

	o, err := oraclecache.New(next, 8)
	require.NoError(t, err)

	first, err := o.ListVersions(ctx, zlib)
	require.NoError(t, err)
	first[0] = "mutated"

	second, err := o.ListVersions(ctx, zlib)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0", "2.0"}, second)
}

func TestOracle_ErrorsAreNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockOracle(ctrl)
	ctx := context.Background()
	zlib := domain.MustParseReference("zlib/1.2.13")
	boom := errors.New("boom")

	gomock.InOrder(
		next.EXPECT().RecipeFor(ctx, zlib).Return(nil, boom),
		next.EXPECT().RecipeFor(ctx, zlib).Return(mocks.NewMockRecipe(ctrl), nil),
	)

	o, err := oraclecache.New(next, 8)
	require.NoError(t, err)

	_, err = o.RecipeFor(ctx, zlib)
	assert.ErrorIs(t, err, boom)
	_, err = o.RecipeFor(ctx, zlib)
	assert.NoError(t, err)
}

func TestNew_InvalidSize(t *testing.T) {
	_, err := oraclecache.New(nil, 0)
	assert.Error(t, err)
}
