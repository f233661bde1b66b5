package toolchain

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the toolchain registry Graft node.
const NodeID graft.ID = "engine.toolchain"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Registry, error) {
			return DefaultRegistry(), nil
		},
	})
}
