package oraclecache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/keel/internal/adapters/repository"
	"go.trai.ch/keel/internal/core/ports"
)

// NodeID is the unique identifier for the cached oracle Graft node.
const NodeID graft.ID = "adapter.oracle"

func init() {
	graft.Register(graft.Node[ports.Oracle]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{repository.NodeID},
		Run: func(ctx context.Context) (ports.Oracle, error) {
			repo, err := graft.Dep[*repository.Repository](ctx)
			if err != nil {
				return nil, err
			}
			return New(repo, DefaultSize)
		},
	})
}
