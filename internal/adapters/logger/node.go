package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/replay/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

// The node hands out one pretty, info-level logger on stderr. Commands switch it
// to JSON or debug output once --log-format and --verbose are parsed.
func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return New(), nil
		},
	})
}
