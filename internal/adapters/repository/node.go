package repository

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/keel/internal/core/domain"
)

// NodeID is the unique identifier for the repository Graft node.
const NodeID graft.ID = "adapter.repository"

func init() {
	graft.Register(graft.Node[*Repository]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Repository, error) {
			return New(domain.DefaultRepositoryPath(domain.HomeDir())), nil
		},
	})
}
