package graphbuilder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/keel/internal/adapters/logger"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/keel/internal/adapters/oraclecache" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/keel/internal/core/ports"
)

// NodeID is the unique identifier for the graph builder Graft node.
const NodeID graft.ID = "engine.graphbuilder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{oraclecache.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Builder, error) {
			oracle, err := graft.Dep[ports.Oracle](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(oracle, log), nil
		},
	})
}
