// Package rustc compiles and runs entries by calling the compiler driver directly,
// reusing one scratch executable path for every entry.
package rustc

import (
	"context"

	"go.trai.ch/replay/internal/core/domain"
	"go.trai.ch/replay/internal/core/ports"
)

// Pipeline builds entries with the compiler driver and runs the resulting binary.
//
// Every entry links to the same scratch path, so a build followed by its run
// must not interleave with another entry's build.
type Pipeline struct {
	executor    ports.Executor
	toolchain   domain.Toolchain
	scratch     ports.ScratchAllocator
	manifestDir string
}

// NewPipeline creates a Pipeline running the compiler driver in manifestDir.
func NewPipeline(
	executor ports.Executor,
	toolchain domain.Toolchain,
	scratch ports.ScratchAllocator,
	manifestDir string,
) *Pipeline {
	return &Pipeline{
		executor:    executor,
		toolchain:   toolchain,
		scratch:     scratch,
		manifestDir: manifestDir,
	}
}

// Command composes a fresh compiler command for source.
// Arguments are always ordered: -o <scratch>, builder flags, source, one emit flag.
func (p *Pipeline) Command(builder ports.BinaryBuilder, source string, willRun bool) (domain.Command, error) {
	target, err := p.scratch.Path()
	if err != nil {
		return domain.Command{}, err
	}

	args := []string{"-o", target}
	args = builder.AppendArgs(args, source)
	args = append(args, domain.EmitModeFor(willRun).Flag())

	return domain.Command{
		Path: p.toolchain.Compiler,
		Args: args,
		Dir:  p.manifestDir,
	}, nil
}

// BuildEntry compiles source into the scratch path. With willRun the result is
// linked; otherwise only dependency information is emitted.
//
// The compiler's streams and exit status are returned unmodified; a non-zero
// status is not an error. Spawn failures are never retried.
func (p *Pipeline) BuildEntry(
	ctx context.Context,
	builder ports.BinaryBuilder,
	source string,
	willRun bool,
) (*domain.ProcessOutput, error) {
	cmd, err := p.Command(builder, source, willRun)
	if err != nil {
		return nil, err
	}

	out, err := p.executor.Execute(ctx, cmd)
	if err != nil {
		return nil, domain.NewEntryError("", domain.ErrCompilerSpawnFailed, domain.Annotate(err, "source", source))
	}
	return out, nil
}

// RunEntry executes the scratch binary without arguments.
// The binary's existence is not checked first: after a dep-info build the
// spawn fails and an EntryError is returned.
func (p *Pipeline) RunEntry(ctx context.Context) (*domain.ProcessOutput, error) {
	target, err := p.scratch.Path()
	if err != nil {
		return nil, err
	}

	out, err := p.executor.Execute(ctx, domain.Command{Path: target})
	if err != nil {
		return nil, domain.NewEntryError("", domain.ErrRunFailed, domain.Annotate(err, "path", target))
	}
	return out, nil
}
