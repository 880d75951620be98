package app_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/replay/internal/app"
	"go.trai.ch/replay/internal/core/domain"
	"go.trai.ch/replay/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const verboseBuild = "   Compiling hello v0.1.0 (/work)\n" +
	"     Running `rustc --crate-name hello --edition=2021 src/bin/hello.rs --crate-type bin`\n" +
	"    Finished dev [unoptimized + debuginfo] target(s) in 0.52s\n"

const scratchPath = "/work/target/batch/2a"

type fixture struct {
	app      *app.App
	loader   *mocks.MockConfigLoader
	executor *mocks.MockExecutor
	store    *mocks.MockResultStore
	hasher   *mocks.MockHasher
	scratch  *mocks.MockScratchAllocator
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		loader:   mocks.NewMockConfigLoader(ctrl),
		executor: mocks.NewMockExecutor(ctrl),
		store:    mocks.NewMockResultStore(ctrl),
		hasher:   mocks.NewMockHasher(ctrl),
		scratch:  mocks.NewMockScratchAllocator(ctrl),
		stdout:   new(bytes.Buffer),
		stderr:   new(bytes.Buffer),
	}

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	f.scratch.EXPECT().Path().Return(scratchPath, nil).AnyTimes()

	f.app = app.New(f.loader, f.executor, log, f.store, f.hasher, f.scratch).
		WithOutput(f.stdout, f.stderr).
		WithToolchain(domain.Toolchain{BuildTool: "cargo", Compiler: "rustc", OptLevel: "debug"})

	return f
}

func helloBatch() *domain.Batch {
	return &domain.Batch{
		Root:        "/work",
		ManifestDir: "/work",
		Reference:   "hello",
		Entries: []domain.Entry{
			{Name: "hello", Source: "examples/hello.rs", Run: true},
		},
	}
}

// fakeToolchain answers build tool, compiler and scratch binary invocations.
func fakeToolchain(compileExit, runExit int) func(context.Context, domain.Command) (*domain.ProcessOutput, error) {
	return func(_ context.Context, cmd domain.Command) (*domain.ProcessOutput, error) {
		switch cmd.Path {
		case "cargo":
			return &domain.ProcessOutput{Stderr: []byte(verboseBuild)}, nil
		case "rustc":
			return &domain.ProcessOutput{Stderr: []byte("warning: unused variable\n"), ExitCode: compileExit}, nil
		case scratchPath:
			return &domain.ProcessOutput{Stdout: []byte("Hello, world!\n"), ExitCode: runExit}, nil
		default:
			return nil, errors.New("unexpected command " + cmd.Path)
		}
	}
}

func TestApp_Capture(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(helloBatch(), nil)
	f.executor.EXPECT().
		Execute(gomock.Any(), domain.Command{
			Path: "cargo",
			Args: []string{"build", "--bin", "hello", "--verbose"},
			Dir:  "/work",
		}).
		Return(&domain.ProcessOutput{Stderr: []byte(verboseBuild)}, nil)

	err := f.app.Capture(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "rustc --crate-name hello --edition=2021 src/bin/hello.rs --crate-type bin\n", f.stdout.String())
}

func TestApp_Capture_NoReference(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(&domain.Batch{Root: "/work"}, nil)

	err := f.app.Capture(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrMissingReference)
}

func TestApp_Capture_ConfigLoaderError(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(nil, errors.New("config load error"))

	err := f.app.Capture(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestApp_Build_Run(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(helloBatch(), nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(fakeToolchain(0, 0)).Times(2)

	err := f.app.Build(context.Background(), []string{"hello"}, app.BuildOptions{Run: true})
	require.NoError(t, err)

	assert.Equal(t, "Hello, world!\n", f.stdout.String())
	assert.Equal(t, "warning: unused variable\n", f.stderr.String())
}

func TestApp_Build_DepInfoOnly(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(helloBatch(), nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, cmd domain.Command) (*domain.ProcessOutput, error) {
			assert.Equal(t, "--emit=dep-info", cmd.Args[len(cmd.Args)-1])
			return fakeToolchain(0, 0)(ctx, cmd)
		})

	err := f.app.Build(context.Background(), []string{"hello"}, app.BuildOptions{})
	require.NoError(t, err)
	assert.Empty(t, f.stdout.String())
}

func TestApp_Build_CompileFailure(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(helloBatch(), nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(fakeToolchain(1, 0))

	err := f.app.Build(context.Background(), []string{"hello"}, app.BuildOptions{Run: true})
	require.ErrorIs(t, err, domain.ErrCompileFailed)

	var entryErr *domain.EntryError
	require.ErrorAs(t, err, &entryErr)
	assert.Equal(t, "hello", entryErr.Entry)
}

func TestApp_Build_RunSpawnFailure(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(helloBatch(), nil)
	gomock.InOrder(
		f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(fakeToolchain(0, 0)),
		f.executor.EXPECT().Execute(gomock.Any(), domain.Command{Path: scratchPath}).
			Return(nil, errors.New("permission denied")),
	)

	err := f.app.Build(context.Background(), []string{"hello"}, app.BuildOptions{Run: true})
	require.ErrorIs(t, err, domain.ErrRunFailed)
	assert.Contains(t, err.Error(), "hello: failed to run entry binary")
}

func TestApp_Build_InterruptedCompile(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	f.loader.EXPECT().Load(".").Return(helloBatch(), nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.Command) (*domain.ProcessOutput, error) {
			cancel()
			return &domain.ProcessOutput{ExitCode: -1}, nil
		})

	err := f.app.Build(ctx, []string{"hello"}, app.BuildOptions{Run: true})
	require.ErrorIs(t, err, domain.ErrEntryInterrupted)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrCompileFailed)
}

func TestApp_Build_Errors(t *testing.T) {
	t.Run("no entries", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load(".").Return(helloBatch(), nil)

		err := f.app.Build(context.Background(), nil, app.BuildOptions{})
		require.ErrorIs(t, err, domain.ErrNoEntriesSpecified)
	})

	t.Run("unknown entry", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load(".").Return(helloBatch(), nil)

		err := f.app.Build(context.Background(), []string{"missing"}, app.BuildOptions{})
		require.ErrorIs(t, err, domain.ErrEntryNotFound)
	})
}

func TestApp_Batch(t *testing.T) {
	f := newFixture(t)
	f.hasher.EXPECT().HashFile("/work/examples/hello.rs").Return("00000000000000aa", nil)

	f.loader.EXPECT().Load(".").Return(helloBatch(), nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(fakeToolchain(0, 0)).Times(3)

	var stored domain.EntryRecord
	f.store.EXPECT().Put("/work", gomock.Any()).
		DoAndReturn(func(_ string, rec domain.EntryRecord) error {
			stored = rec
			return nil
		})

	err := f.app.Batch(context.Background(), app.BatchOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.StateExecuted, stored.State)
	assert.Equal(t, "00000000000000aa", stored.SourceHash)
	assert.Equal(t, domain.Invocation("rustc --crate-name hello --edition=2021 src/bin/hello.rs --crate-type bin"), stored.Invocation)

	assert.Contains(t, f.stderr.String(), "Planning to build 1 entry(s): [hello]")
	assert.Contains(t, f.stderr.String(), "Starting...")
	assert.Contains(t, f.stderr.String(), "Completed in")
	assert.Contains(t, f.stdout.String(), "[hello] warning: unused variable")
	assert.Contains(t, f.stdout.String(), "[hello] Hello, world!")
}

func TestApp_Batch_EntryFailed(t *testing.T) {
	f := newFixture(t)
	f.hasher.EXPECT().HashFile("/work/examples/hello.rs").Return("00000000000000aa", nil)

	f.loader.EXPECT().Load(".").Return(helloBatch(), nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(fakeToolchain(0, 101)).Times(3)
	f.store.EXPECT().Put("/work", gomock.Any()).Return(nil)

	err := f.app.Batch(context.Background(), app.BatchOptions{})
	require.ErrorIs(t, err, domain.ErrBatchFailed)
	require.ErrorIs(t, err, domain.ErrEntryExitStatus)

	assert.Contains(t, f.stderr.String(), "Failed after")
}

func TestApp_Batch_JSONLogs(t *testing.T) {
	f := newFixture(t)
	f.hasher.EXPECT().HashFile("/work/examples/hello.rs").Return("00000000000000aa", nil)
	f.app.ConfigureLogging("json", false)

	f.loader.EXPECT().Load(".").Return(helloBatch(), nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(fakeToolchain(0, 0)).Times(2)
	f.store.EXPECT().Put("/work", gomock.Any()).Return(nil)

	err := f.app.Batch(context.Background(), app.BatchOptions{NoRun: true})
	require.NoError(t, err)

	assert.Empty(t, f.stderr.String())
	assert.Empty(t, f.stdout.String())
}

func TestApp_Batch_CaptureFailure(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(helloBatch(), nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).
		Return(&domain.ProcessOutput{Stderr: []byte("error: no bin target named `hello`\n"), ExitCode: 101}, nil)

	err := f.app.Batch(context.Background(), app.BatchOptions{})
	require.ErrorIs(t, err, domain.ErrNoInvocationFound)
	assert.True(t, domain.IsPrecondition(err))
}

func TestApp_Report(t *testing.T) {
	f := newFixture(t)

	b := helloBatch()
	b.Entries = append(b.Entries,
		domain.Entry{Name: "edited", Source: "examples/edited.rs"},
		domain.Entry{Name: "pending", Source: "examples/pending.rs"},
	)

	f.loader.EXPECT().Load(".").Return(b, nil)
	f.store.EXPECT().Get("/work", "hello").Return(&domain.EntryRecord{
		Entry:      "hello",
		State:      domain.StateExecuted,
		Build:      &domain.ProcessOutput{Duration: 1200 * time.Millisecond},
		Run:        &domain.ProcessOutput{Duration: 50 * time.Millisecond},
		SourceHash: "00000000000000aa",
		Timestamp:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil)
	f.store.EXPECT().Get("/work", "edited").Return(&domain.EntryRecord{
		Entry:      "edited",
		State:      domain.StateFailed,
		SourceHash: "00000000000000bb",
		Timestamp:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil)
	f.store.EXPECT().Get("/work", "pending").Return(nil, nil)
	f.hasher.EXPECT().HashFile("/work/examples/hello.rs").Return("00000000000000aa", nil)
	f.hasher.EXPECT().HashFile("/work/examples/edited.rs").Return("00000000000000cc", nil)
	f.store.EXPECT().List("/work").Return([]domain.EntryRecord{
		{Entry: "edited"},
		{Entry: "hello"},
		{Entry: "retired"},
	}, nil)

	err := f.app.Report(context.Background())
	require.NoError(t, err)

	out := f.stdout.String()
	assert.Contains(t, out, "ENTRY")
	assert.Contains(t, out, "✓ executed")
	assert.Contains(t, out, "1.25s")
	assert.Contains(t, out, "unchanged")
	assert.Contains(t, out, "✗ failed")
	assert.Contains(t, out, "~ changed")
	assert.Contains(t, out, "○ unbuilt")
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "! stored results for entries no longer configured: retired")
}

func TestApp_Report_StoreError(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(helloBatch(), nil)
	f.store.EXPECT().Get("/work", "hello").Return(nil, domain.ErrStoreReadFailed)

	err := f.app.Report(context.Background())
	require.ErrorIs(t, err, domain.ErrStoreReadFailed)
}

func TestApp_Clean(t *testing.T) {
	root := t.TempDir()
	scratchDir := filepath.Join(root, "target", "batch")
	resultsDir := filepath.Join(root, domain.DefaultResultsPath())
	require.NoError(t, os.MkdirAll(scratchDir, domain.DirPerm))
	require.NoError(t, os.MkdirAll(resultsDir, domain.DirPerm))

	t.Run("scratch only", func(t *testing.T) {
		f := newFixture(t)
		f.scratch.EXPECT().Dir().Return(scratchDir)

		err := f.app.Clean(context.Background(), app.CleanOptions{Scratch: true})
		require.NoError(t, err)

		assert.NoDirExists(t, scratchDir)
		assert.DirExists(t, resultsDir)
	})

	t.Run("results", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().DiscoverRoot(".").Return(root, nil)

		err := f.app.Clean(context.Background(), app.CleanOptions{Results: true})
		require.NoError(t, err)

		assert.NoDirExists(t, resultsDir)
	})

	t.Run("results without config", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().DiscoverRoot(".").Return("", domain.ErrConfigNotFound)

		err := f.app.Clean(context.Background(), app.CleanOptions{Results: true})
		require.ErrorIs(t, err, domain.ErrConfigNotFound)
	})
}
