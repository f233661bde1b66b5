package progrock_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/internal/adapters/telemetry/progrock"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
)

func TestRecorder_Summary(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	rec := progrock.NewRecorder(progrock.NewSummary(&buf))

	ctx, resolve := rec.Record(context.Background(), "resolve graph")
	got, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, resolve, got)
	resolve.Log(domain.LogLevelInfo, "expanded 3 nodes")
	resolve.Complete(nil)

	_, cache := rec.Record(context.Background(), "check binaries")
	cache.Cached()
	cache.Complete(nil)

	_, failed := rec.Record(context.Background(), "compute package ids")
	failed.Log(domain.LogLevelError, "zlib/1.2.13: hook failed")
	failed.Complete(errors.New("boom"))

	require.NoError(t, rec.Close())

	out := buf.String()
	assert.Contains(t, out, "✓ resolve graph\n")
	assert.Contains(t, out, "✓ check binaries (cached)\n")
	assert.Contains(t, out, "✗ compute package ids: boom\n")
	assert.Contains(t, out, "    [ERROR] zlib/1.2.13: hook failed\n")
	assert.NotContains(t, out, "expanded 3 nodes")
}

func TestRecorder_SameNameStaysDistinct(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	rec := progrock.NewRecorder(progrock.NewSummary(&buf))

	_, a := rec.Record(context.Background(), "check zlib")
	_, b := rec.Record(context.Background(), "check zlib")
	a.Complete(nil)
	b.Complete(errors.New("missing"))
	require.NoError(t, rec.Close())

	assert.Contains(t, buf.String(), "✓ check zlib\n")
	assert.Contains(t, buf.String(), "✗ check zlib: missing\n")
}

func TestSummary_EmptyPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	s := progrock.NewSummary(&buf)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Empty(t, buf.String())
}
