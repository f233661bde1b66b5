package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/keel/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/keel/internal/adapters/lockfile"           //nolint:depguard // Wired in app layer
	"go.trai.ch/keel/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/keel/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/keel/internal/engine/graphbuilder"
	"go.trai.ch/keel/internal/engine/identity"
	"go.trai.ch/keel/internal/engine/toolchain"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles what the command line needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			graphbuilder.NodeID,
			identity.ComputerNodeID,
			identity.AnalyzerNodeID,
			toolchain.NodeID,
			lockfile.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	builder, err := graft.Dep[*graphbuilder.Builder](ctx)
	if err != nil {
		return nil, err
	}

	computer, err := graft.Dep[*identity.Computer](ctx)
	if err != nil {
		return nil, err
	}

	analyzer, err := graft.Dep[*identity.Analyzer](ctx)
	if err != nil {
		return nil, err
	}

	registry, err := graft.Dep[*toolchain.Registry](ctx)
	if err != nil {
		return nil, err
	}

	locks, err := graft.Dep[ports.LockfileStore](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, builder, computer, analyzer, registry, locks, telemetry, log), nil
}
