package identity

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/keel/internal/adapters/cache"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/keel/internal/adapters/oraclecache" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/keel/internal/engine/toolchain"
)

const (
	// ComputerNodeID is the unique identifier for the package id computer Graft node.
	ComputerNodeID graft.ID = "engine.identity"
	// AnalyzerNodeID is the unique identifier for the binary analyzer Graft node.
	AnalyzerNodeID graft.ID = "engine.binaries"
)

func init() {
	graft.Register(graft.Node[*Computer]{
		ID:        ComputerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{toolchain.NodeID},
		Run: func(ctx context.Context) (*Computer, error) {
			registry, err := graft.Dep[*toolchain.Registry](ctx)
			if err != nil {
				return nil, err
			}
			return NewComputer(registry), nil
		},
	})

	graft.Register(graft.Node[*Analyzer]{
		ID:        AnalyzerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{oraclecache.NodeID, cache.NodeID},
		Run: func(ctx context.Context) (*Analyzer, error) {
			oracle, err := graft.Dep[ports.Oracle](ctx)
			if err != nil {
				return nil, err
			}

			pkgCache, err := graft.Dep[ports.PackageCache](ctx)
			if err != nil {
				return nil, err
			}

			return NewAnalyzer(oracle, pkgCache), nil
		},
	})
}
