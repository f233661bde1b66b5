package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/keel/internal/adapters/telemetry"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
)

func TestNoop(t *testing.T) {
	tel := telemetry.NewNoop()

	ctx, v := tel.Record(context.Background(), "resolve graph")
	got, ok := ports.VertexFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, v, got)

	n, err := v.Stdout().Write([]byte("ignored"))
	assert.NoError(t, err)
	assert.Equal(t, 7, n)
	v.Log(domain.LogLevelWarn, "ignored")
	v.Cached()
	v.Complete(nil)
	assert.NoError(t, tel.Close())
}
