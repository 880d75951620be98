package scratch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/replay/internal/core/domain"
)

// NodeID is the unique identifier for the scratch allocator Graft node.
const NodeID graft.ID = "adapter.scratch"

func init() {
	graft.Register(graft.Node[*Allocator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Allocator, error) {
			return NewAllocator(domain.DefaultScratchDir()), nil
		},
	})
}
