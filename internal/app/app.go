// Package app implements the application layer for replay.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/replay/internal/adapters/capture"
	"go.trai.ch/replay/internal/adapters/detector"
	"go.trai.ch/replay/internal/adapters/linear"
	"go.trai.ch/replay/internal/adapters/rustc"
	"go.trai.ch/replay/internal/adapters/telemetry"
	"go.trai.ch/replay/internal/build"
	"go.trai.ch/replay/internal/core/domain"
	"go.trai.ch/replay/internal/core/ports"
	"go.trai.ch/replay/internal/engine/batch"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	logger       ports.Logger
	store        ports.ResultStore
	hasher       ports.Hasher
	scratch      ports.ScratchAllocator
	toolchain    domain.Toolchain
	stdout       io.Writer
	stderr       io.Writer
	jsonLogs     bool
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	log ports.Logger,
	store ports.ResultStore,
	hasher ports.Hasher,
	scratch ports.ScratchAllocator,
) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		logger:       log,
		store:        store,
		hasher:       hasher,
		scratch:      scratch,
		toolchain:    build.Toolchain(),
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}
}

// WithOutput redirects program and progress output.
// This is primarily used for testing.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithToolchain overrides the build-time toolchain settings.
// This is primarily used for testing.
func (a *App) WithToolchain(toolchain domain.Toolchain) *App {
	a.toolchain = toolchain
	return a
}

// ConfigureLogging applies the --log-format and --verbose flags to the logger.
func (a *App) ConfigureLogging(format string, verbose bool) {
	resolved := detector.ResolveFormat(detector.DetectEnvironment(), format)
	a.jsonLogs = resolved == detector.FormatJSON

	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(a.jsonLogs)
	}
	if l, ok := a.logger.(interface{ SetVerbose(bool) }); ok {
		l.SetVerbose(verbose)
	}
}

// Capture prints the compiler invocation the build tool uses for entry.
// An empty entry selects the configured reference entry.
func (a *App) Capture(ctx context.Context, entry string) error {
	b, err := a.load()
	if err != nil {
		return err
	}

	if entry == "" {
		entry = b.Reference
	}
	if entry == "" {
		return domain.ErrMissingReference
	}

	engine := capture.NewEngine(a.executor, a.toolchain, b.ManifestDir, b.RustFlags, a.logger)
	inv, err := engine.Capture(ctx, entry)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(a.stdout, inv.String())
	return nil
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	// Run links each entry and executes it right after its build.
	Run bool
}

// Build compiles the named entries directly with the compiler driver, without
// capturing or storing results. It stops at the first failed entry.
func (a *App) Build(ctx context.Context, entryNames []string, opts BuildOptions) error {
	b, err := a.load()
	if err != nil {
		return err
	}

	if len(entryNames) == 0 {
		return domain.ErrNoEntriesSpecified
	}

	entries := make([]domain.Entry, 0, len(entryNames))
	for _, name := range entryNames {
		entry, ok := b.Entry(name)
		if !ok {
			return domain.Annotate(domain.ErrEntryNotFound, "entry", name)
		}
		entries = append(entries, entry)
	}

	pipeline := rustc.NewPipeline(a.executor, a.toolchain, a.scratch, b.ManifestDir)
	for _, entry := range entries {
		if err := a.buildOne(ctx, pipeline, b.Builder, entry, opts.Run); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) buildOne(
	ctx context.Context,
	pipeline *rustc.Pipeline,
	builder ports.BinaryBuilder,
	entry domain.Entry,
	run bool,
) error {
	a.logger.Info(fmt.Sprintf("building %s (%s)", entry.Name, domain.EmitModeFor(run)))

	out, err := pipeline.BuildEntry(ctx, builder, entry.Source, run)
	if err != nil {
		return nameEntry(err, entry.Name)
	}
	_, _ = a.stderr.Write(out.Stderr)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.NewEntryError(entry.Name, domain.ErrEntryInterrupted, ctxErr)
	}
	if !out.Success() {
		return zerr.With(domain.NewEntryError(entry.Name, domain.ErrCompileFailed, nil), "exit_code", out.ExitCode)
	}

	if !run {
		return nil
	}

	runOut, err := pipeline.RunEntry(ctx)
	if err != nil {
		return nameEntry(err, entry.Name)
	}
	_, _ = a.stdout.Write(runOut.Stdout)
	_, _ = a.stderr.Write(runOut.Stderr)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.NewEntryError(entry.Name, domain.ErrEntryInterrupted, ctxErr)
	}
	if !runOut.Success() {
		return zerr.With(domain.NewEntryError(entry.Name, domain.ErrEntryExitStatus, nil), "exit_code", runOut.ExitCode)
	}
	return nil
}

func nameEntry(err error, name string) error {
	var entryErr *domain.EntryError
	if errors.As(err, &entryErr) && entryErr.Entry == "" {
		entryErr.Entry = name
	}
	return err
}

// BatchOptions configuration for the Batch method.
type BatchOptions struct {
	Entries  []string
	NoRun    bool
	FailFast bool
}

// Batch captures the reference entry, then builds and runs the selected entries
// while rendering their progress.
func (a *App) Batch(ctx context.Context, opts BatchOptions) error {
	b, err := a.load()
	if err != nil {
		return err
	}

	runOpts := batch.Options{
		Entries:  opts.Entries,
		NoRun:    opts.NoRun,
		FailFast: opts.FailFast,
	}

	// JSON logs are meant for machines; skip progress rendering.
	if a.jsonLogs {
		report, err := a.newRunner(b, telemetry.NewNoOpTracer()).Run(ctx, b, runOpts)
		a.summarize(report)
		return err
	}

	renderer := linear.NewRenderer(a.stdout, a.stderr)
	tracer := telemetry.NewOTelTracer(renderer)
	defer func() {
		_ = tracer.Shutdown(context.WithoutCancel(ctx))
	}()

	runner := a.newRunner(b, tracer)

	var report *domain.BatchReport
	g, gctx := errgroup.WithContext(ctx)

	// Renderer Routine
	g.Go(func() error {
		if err := renderer.Start(gctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	// Runner Routine
	g.Go(func() error {
		defer func() {
			_ = renderer.Stop()
		}()

		var runErr error
		report, runErr = runner.Run(gctx, b, runOpts)
		return runErr
	})

	err = g.Wait()
	a.summarize(report)
	return err
}

func (a *App) newRunner(b *domain.Batch, tracer ports.Tracer) *batch.Runner {
	capturer := capture.NewEngine(a.executor, a.toolchain, b.ManifestDir, b.RustFlags, a.logger)
	pipeline := rustc.NewPipeline(a.executor, a.toolchain, a.scratch, b.ManifestDir)
	return batch.NewRunner(capturer, pipeline, a.store, a.hasher, tracer, a.logger)
}

func (a *App) summarize(report *domain.BatchReport) {
	if report == nil {
		return
	}

	failed := report.Failed()
	if a.jsonLogs {
		for _, rec := range failed {
			a.logger.Warn(rec.Error)
		}
	}
	a.logger.Info(fmt.Sprintf("batch %s: %d entry(s), %d failed in %s",
		report.RunID,
		len(report.Records),
		len(failed),
		report.Duration.Round(time.Millisecond),
	))
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Results bool
	Scratch bool
}

// Clean removes the scratch directory and the result store based on the provided options.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	var errs error

	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, "failed to remove "+name))
			return
		}
		a.logger.Info("removed " + name)
	}

	if options.Scratch {
		remove(a.scratch.Dir(), "scratch directory")
	}

	if options.Results {
		root, err := a.configLoader.DiscoverRoot(".")
		if err != nil {
			return errors.Join(errs, err)
		}
		remove(filepath.Join(root, domain.DefaultResultsPath()), "result store")
	}

	return errs
}

func (a *App) load() (*domain.Batch, error) {
	b, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return b, nil
}
