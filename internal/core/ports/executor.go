// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/replay/internal/core/domain"
)

// Executor defines the interface for running child processes.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute spawns the command, waits for it to exit and returns its captured output.
	//
	// A process that starts and exits with a non-zero status is not an error: the status
	// is reported in the returned output. An error means the process could not be spawned.
	Execute(ctx context.Context, cmd domain.Command) (*domain.ProcessOutput, error)
}
