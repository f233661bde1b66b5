// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/keel/internal/adapters/cache"
	_ "go.trai.ch/keel/internal/adapters/config"
	_ "go.trai.ch/keel/internal/adapters/lockfile"
	_ "go.trai.ch/keel/internal/adapters/logger"
	_ "go.trai.ch/keel/internal/adapters/oraclecache"
	_ "go.trai.ch/keel/internal/adapters/repository"
	_ "go.trai.ch/keel/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/keel/internal/app"
	_ "go.trai.ch/keel/internal/engine/graphbuilder"
	_ "go.trai.ch/keel/internal/engine/identity"
	_ "go.trai.ch/keel/internal/engine/toolchain"
)
