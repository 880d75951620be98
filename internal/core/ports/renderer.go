package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for batch progress output.
// It decouples telemetry collection from presentation.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and flush buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnPlanEmit is called once with the entries about to be processed, in order.
	OnPlanEmit(entries []string)

	// OnEntryStart is called when a span begins.
	// parentID is empty for root spans.
	OnEntryStart(spanID, parentID, name string, startTime time.Time)

	// OnEntryLog is called when a span emits output.
	// data may contain partial lines.
	OnEntryLog(spanID string, data []byte)

	// OnEntryComplete is called when a span ends. err is nil on success.
	OnEntryComplete(spanID string, endTime time.Time, err error)
}
