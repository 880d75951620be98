package ports

import (
	"context"

	"go.trai.ch/replay/internal/core/domain"
)

//go:generate mockgen -source=pipeline.go -destination=mocks/mock_pipeline.go -package=mocks

// Capturer asks the build tool which compiler invocation it uses for an entry.
type Capturer interface {
	// Capture returns the last compiler invocation announced while building entry.
	Capture(ctx context.Context, entry string) (domain.Invocation, error)
}

// Pipeline compiles entries into the shared scratch path and runs the result.
type Pipeline interface {
	// Command composes the compiler command BuildEntry would spawn.
	Command(builder BinaryBuilder, source string, willRun bool) (domain.Command, error)
	// BuildEntry compiles source, linking it when willRun is set.
	BuildEntry(ctx context.Context, builder BinaryBuilder, source string, willRun bool) (*domain.ProcessOutput, error)
	// RunEntry executes the scratch binary without arguments.
	RunEntry(ctx context.Context) (*domain.ProcessOutput, error)
}
