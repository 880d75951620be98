package rustc_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/replay/internal/adapters/rustc"
	"go.trai.ch/replay/internal/core/domain"
	"go.trai.ch/replay/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const scratchPath = "/work/target/batch/2a"

var toolchain = domain.Toolchain{BuildTool: "cargo", Compiler: "/usr/bin/rustc", OptLevel: "debug"}

func newPipeline(t *testing.T) (*rustc.Pipeline, *mocks.MockExecutor) {
	t.Helper()

	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)
	scratch := mocks.NewMockScratchAllocator(ctrl)
	scratch.EXPECT().Path().Return(scratchPath, nil).AnyTimes()

	return rustc.NewPipeline(executor, toolchain, scratch, "/work"), executor
}

func testBuilder() domain.FlagBuilder {
	return domain.FlagBuilder{
		Edition: "2021",
		LibDirs: []string{"target/debug/deps"},
		Externs: map[string]string{
			"serde":  "",
			"anyhow": "target/debug/deps/libanyhow.rlib",
		},
		Flags: []string{"-C", "opt-level=1"},
	}
}

func TestPipeline_Command_ArgumentOrder(t *testing.T) {
	pipeline, _ := newPipeline(t)

	cmd, err := pipeline.Command(testBuilder(), "examples/hello.rs", true)
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/rustc", cmd.Path)
	assert.Equal(t, "/work", cmd.Dir)

	g := goldie.New(t)
	g.Assert(t, "build_args_link", []byte(strings.Join(cmd.Args, "\n")+"\n"))
}

func TestPipeline_Command_ExactlyOneEmitFlag(t *testing.T) {
	for _, willRun := range []bool{true, false} {
		pipeline, _ := newPipeline(t)

		cmd, err := pipeline.Command(testBuilder(), "examples/hello.rs", willRun)
		require.NoError(t, err)

		var emits []string
		for _, arg := range cmd.Args {
			if strings.HasPrefix(arg, "--emit=") {
				emits = append(emits, arg)
			}
		}
		require.Len(t, emits, 1)
		assert.Equal(t, domain.EmitModeFor(willRun).Flag(), emits[0])
		assert.Equal(t, emits[0], cmd.Args[len(cmd.Args)-1], "emit flag comes last")
		assert.Equal(t, []string{"-o", scratchPath}, cmd.Args[:2], "output path comes first")
		assert.Equal(t, "examples/hello.rs", cmd.Args[len(cmd.Args)-2], "source precedes the emit flag")
	}
}

func TestPipeline_Command_FreshTemplate(t *testing.T) {
	pipeline, _ := newPipeline(t)

	first, err := pipeline.Command(testBuilder(), "examples/a.rs", true)
	require.NoError(t, err)
	second, err := pipeline.Command(testBuilder(), "examples/b.rs", false)
	require.NoError(t, err)

	assert.NotContains(t, second.Args, "examples/a.rs")
	assert.NotContains(t, second.Args, "--emit=link")
	assert.Equal(t, len(first.Args), len(second.Args))
}

func TestPipeline_Command_ScratchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	scratch := mocks.NewMockScratchAllocator(ctrl)
	scratchErr := domain.NewBatchError(domain.KindPrecondition, domain.ErrScratchDirCreateFailed, os.ErrPermission)
	scratch.EXPECT().Path().Return("", scratchErr).Times(2)

	pipeline := rustc.NewPipeline(mocks.NewMockExecutor(ctrl), toolchain, scratch, "/work")

	_, err := pipeline.BuildEntry(context.Background(), testBuilder(), "examples/hello.rs", true)
	assert.True(t, domain.IsPrecondition(err))

	_, err = pipeline.RunEntry(context.Background())
	assert.ErrorIs(t, err, domain.ErrScratchDirCreateFailed)
}

func TestPipeline_BuildAndRun(t *testing.T) {
	pipeline, executor := newPipeline(t)
	ctx := context.Background()

	gomock.InOrder(
		executor.EXPECT().
			Execute(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, cmd domain.Command) (*domain.ProcessOutput, error) {
				assert.Equal(t, "--emit=link", cmd.Args[len(cmd.Args)-1])
				return &domain.ProcessOutput{Stderr: []byte("warning: unused variable\n")}, nil
			}),
		executor.EXPECT().
			Execute(ctx, domain.Command{Path: scratchPath}).
			Return(&domain.ProcessOutput{Stdout: []byte("Hello, world!\n")}, nil),
	)

	build, err := pipeline.BuildEntry(ctx, testBuilder(), "examples/hello.rs", true)
	require.NoError(t, err)
	assert.True(t, build.Success())
	assert.Equal(t, "warning: unused variable\n", string(build.Stderr))

	run, err := pipeline.RunEntry(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!\n", string(run.Stdout))
}

func TestPipeline_BuildEntry_CompileErrorIsNotAnError(t *testing.T) {
	pipeline, executor := newPipeline(t)

	executor.EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		Return(&domain.ProcessOutput{Stderr: []byte("error[E0425]: cannot find value `x`\n"), ExitCode: 1}, nil)

	out, err := pipeline.BuildEntry(context.Background(), testBuilder(), "examples/broken.rs", false)
	require.NoError(t, err)

	assert.Equal(t, 1, out.ExitCode)
	assert.Contains(t, string(out.Stderr), "E0425")
}

func TestPipeline_BuildEntry_SpawnFailure(t *testing.T) {
	pipeline, executor := newPipeline(t)
	spawnErr := errors.New("no such file or directory")

	executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, spawnErr).Times(1)

	out, err := pipeline.BuildEntry(context.Background(), testBuilder(), "examples/hello.rs", true)
	assert.Nil(t, out)

	var entryErr *domain.EntryError
	require.ErrorAs(t, err, &entryErr)
	assert.Equal(t, domain.KindRuntime, entryErr.Kind)
	assert.ErrorIs(t, err, domain.ErrCompilerSpawnFailed)
	assert.ErrorIs(t, err, spawnErr)
}

func TestPipeline_RunEntry_AfterDepInfoBuild(t *testing.T) {
	pipeline, executor := newPipeline(t)
	ctx := context.Background()

	gomock.InOrder(
		executor.EXPECT().Execute(ctx, gomock.Any()).Return(&domain.ProcessOutput{}, nil),
		executor.EXPECT().Execute(ctx, domain.Command{Path: scratchPath}).Return(nil, os.ErrNotExist),
	)

	_, err := pipeline.BuildEntry(ctx, testBuilder(), "examples/hello.rs", false)
	require.NoError(t, err)

	_, err = pipeline.RunEntry(ctx)

	var entryErr *domain.EntryError
	require.ErrorAs(t, err, &entryErr)
	assert.ErrorIs(t, err, domain.ErrRunFailed)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, domain.IsPrecondition(err))
}
