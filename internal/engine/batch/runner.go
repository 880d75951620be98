// Package batch runs a suite of entries against one captured build configuration.
package batch

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/replay/internal/core/domain"
	"go.trai.ch/replay/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options selects entries and overrides batch settings for one run.
type Options struct {
	// Entries restricts the run to the named entries. Empty means all of them.
	Entries []string
	// NoRun builds every entry in dep-info mode and never executes it.
	NoRun bool
	// FailFast stops at the first failed entry, in addition to the configured setting.
	FailFast bool
}

// Runner builds and runs entries one after another.
// Entries share the pipeline's scratch path, so a Runner never runs them concurrently.
type Runner struct {
	capturer ports.Capturer
	pipeline ports.Pipeline
	store    ports.ResultStore
	hasher   ports.Hasher
	tracer   ports.Tracer
	logger   ports.Logger

	newID func() string
	now   func() time.Time
}

// NewRunner creates a new Runner.
func NewRunner(
	capturer ports.Capturer,
	pipeline ports.Pipeline,
	store ports.ResultStore,
	hasher ports.Hasher,
	tracer ports.Tracer,
	logger ports.Logger,
) *Runner {
	return &Runner{
		capturer: capturer,
		pipeline: pipeline,
		store:    store,
		hasher:   hasher,
		tracer:   tracer,
		logger:   logger,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Run captures the reference entry once, then builds and optionally runs every
// selected entry in configuration order.
//
// A failed capture aborts the batch before any entry is built. Entry failures are
// collected; the returned error wraps domain.ErrBatchFailed when any entry failed.
// Precondition failures stop the batch immediately.
func (r *Runner) Run(ctx context.Context, batch *domain.Batch, opts Options) (*domain.BatchReport, error) {
	entries, err := selectEntries(batch, opts.Entries)
	if err != nil {
		return nil, err
	}

	start := r.now()
	report := &domain.BatchReport{RunID: r.newID()}

	inv, err := r.capturer.Capture(ctx, batch.Reference)
	if err != nil {
		return nil, err
	}
	report.Invocation = inv
	r.logger.Debug("captured invocation for " + batch.Reference + ": " + inv.String())

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	r.tracer.EmitPlan(ctx, names)

	failFast := batch.FailFast || opts.FailFast

	var errs error
	for _, entry := range entries {
		if ctxErr := ctx.Err(); ctxErr != nil {
			errs = errors.Join(errs, ctxErr)
			break
		}

		rec, entryErr := r.runEntry(ctx, batch, entry, report.RunID, inv, opts.NoRun)
		report.Records = append(report.Records, rec)

		if putErr := r.store.Put(batch.Root, rec); putErr != nil {
			errs = errors.Join(errs, zerr.Wrap(putErr, "failed to store entry result"))
		}

		if entryErr == nil {
			continue
		}
		if domain.IsPrecondition(entryErr) {
			report.Duration = r.now().Sub(start)
			return report, entryErr
		}
		errs = errors.Join(errs, entryErr)
		if failFast {
			break
		}
	}

	report.Duration = r.now().Sub(start)

	if len(report.Failed()) > 0 {
		return report, errors.Join(domain.ErrBatchFailed, errs)
	}
	return report, errs
}

func (r *Runner) runEntry(
	ctx context.Context,
	batch *domain.Batch,
	entry domain.Entry,
	runID string,
	inv domain.Invocation,
	noRun bool,
) (domain.EntryRecord, error) {
	ctx, span := r.tracer.Start(ctx, entry.Name)
	defer span.End()

	willRun := entry.Run && !noRun
	mode := domain.EmitModeFor(willRun)
	span.SetAttribute("entry.source", entry.Source)
	span.SetAttribute("entry.emit", string(mode))

	rec := domain.EntryRecord{
		RunID:      runID,
		Entry:      entry.Name,
		Source:     entry.Source,
		State:      domain.StateUnbuilt,
		Timestamp:  r.now(),
		Invocation: inv,
	}

	if hash, err := r.hasher.HashFile(batch.SourcePath(entry.Source)); err == nil {
		rec.SourceHash = hash
	} else {
		r.logger.Debug("cannot fingerprint " + entry.Source + ": " + err.Error())
	}

	cmd, err := r.pipeline.Command(batch.Builder, entry.Source, willRun)
	if err != nil {
		return r.fail(span, rec, err)
	}
	rec.Command = cmd.String()
	r.logger.Debug("building " + entry.Name + ": " + rec.Command)

	out, err := r.pipeline.BuildEntry(ctx, batch.Builder, entry.Source, willRun)
	if err != nil {
		return r.fail(span, rec, err)
	}
	rec.Build = out
	writeOutput(span, out)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return r.fail(span, rec, domain.NewEntryError(entry.Name, domain.ErrEntryInterrupted, ctxErr))
	}

	if !out.Success() {
		return r.fail(span, rec, exitError(entry.Name, domain.ErrCompileFailed, out.ExitCode))
	}
	rec.State = domain.AfterBuild(mode)

	if !willRun {
		return rec, nil
	}

	runOut, err := r.pipeline.RunEntry(ctx)
	if err != nil {
		return r.fail(span, rec, err)
	}
	rec.Run = runOut
	writeOutput(span, runOut)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return r.fail(span, rec, domain.NewEntryError(entry.Name, domain.ErrEntryInterrupted, ctxErr))
	}

	if !runOut.Success() {
		return r.fail(span, rec, exitError(entry.Name, domain.ErrEntryExitStatus, runOut.ExitCode))
	}
	rec.State = domain.StateExecuted

	return rec, nil
}

func (r *Runner) fail(span ports.Span, rec domain.EntryRecord, err error) (domain.EntryRecord, error) {
	var entryErr *domain.EntryError
	if errors.As(err, &entryErr) && entryErr.Entry == "" {
		entryErr.Entry = rec.Entry
	}

	rec.State = domain.StateFailed
	rec.Error = err.Error()
	span.RecordError(err)

	return rec, err
}

func exitError(entry string, reason error, code int) error {
	return domain.NewEntryError(entry, reason, zerr.With(zerr.New("exit status "+strconv.Itoa(code)), "exit_code", code))
}

func writeOutput(span ports.Span, out *domain.ProcessOutput) {
	if len(out.Stdout) > 0 {
		_, _ = span.Write(out.Stdout)
	}
	if len(out.Stderr) > 0 {
		_, _ = span.Write(out.Stderr)
	}
}

// selectEntries returns the named entries in configuration order.
func selectEntries(batch *domain.Batch, names []string) ([]domain.Entry, error) {
	if len(names) == 0 {
		if len(batch.Entries) == 0 {
			return nil, domain.ErrNoEntriesSpecified
		}
		return batch.Entries, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := batch.Entry(name); !ok {
			return nil, domain.Annotate(domain.ErrEntryNotFound, "entry", name)
		}
		wanted[name] = true
	}

	selected := make([]domain.Entry, 0, len(wanted))
	for _, entry := range batch.Entries {
		if wanted[entry.Name] {
			selected = append(selected, entry)
		}
	}
	return selected, nil
}
