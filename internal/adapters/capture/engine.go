// Package capture asks the build tool which compiler command it would run for an entry.
package capture

import (
	"context"

	"go.trai.ch/replay/internal/core/domain"
	"go.trai.ch/replay/internal/core/ports"
)

// Engine runs a verbose build of one entry and extracts the announced compiler invocation.
type Engine struct {
	executor    ports.Executor
	toolchain   domain.Toolchain
	manifestDir string
	env         ports.EnvSetter
	logger      ports.Logger
}

// NewEngine creates an Engine that runs the build tool in manifestDir.
// env may be nil when no flags are injected.
func NewEngine(
	executor ports.Executor,
	toolchain domain.Toolchain,
	manifestDir string,
	env ports.EnvSetter,
	logger ports.Logger,
) *Engine {
	return &Engine{
		executor:    executor,
		toolchain:   toolchain,
		manifestDir: manifestDir,
		env:         env,
		logger:      logger,
	}
}

// Command returns the build tool command used to capture entry.
func (e *Engine) Command(entry string) domain.Command {
	args := []string{"build"}
	if e.toolchain.Release() {
		args = append(args, "--release")
	}
	args = append(args, "--bin", entry, "--verbose")

	var env []string
	if e.env != nil {
		env = e.env.Environ()
	}

	return domain.Command{
		Path: e.toolchain.BuildTool,
		Args: args,
		Dir:  e.manifestDir,
		Env:  env,
	}
}

// Capture builds entry with the build tool and returns the last compiler
// invocation it announced. The result is not cached.
//
// The build tool's exit status is not inspected: a failed build that still
// announced an invocation yields that invocation.
func (e *Engine) Capture(ctx context.Context, entry string) (domain.Invocation, error) {
	cmd := e.Command(entry)
	e.logger.Debug("capturing " + cmd.String())

	out, err := e.executor.Execute(ctx, cmd)
	if err != nil {
		return "", domain.NewBatchError(domain.KindRuntime, domain.ErrBuildToolSpawnFailed,
			domain.Annotate(err, "entry", entry))
	}

	if !out.Success() {
		e.logger.Warn(e.toolchain.BuildTool + " exited with a non-zero status while capturing " + entry)
	}

	inv, err := domain.ExtractInvocation(out.Stderr)
	if err != nil {
		return "", err
	}

	e.logger.Debug("captured " + inv.String())
	return inv, nil
}
