package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
)

// NodeID is the unique identifier for the package cache Graft node.
const NodeID graft.ID = "adapter.package_cache"

func init() {
	graft.Register(graft.Node[ports.PackageCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PackageCache, error) {
			return New(domain.DefaultCachePath(domain.HomeDir())), nil
		},
	})
}
