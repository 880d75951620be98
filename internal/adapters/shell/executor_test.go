package shell_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/replay/internal/adapters/shell"
	"go.trai.ch/replay/internal/core/domain"
	"go.trai.ch/replay/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestExecutor_Execute_CapturesStreams(t *testing.T) {
	executor := shell.NewExecutor(nil)

	out, err := executor.Execute(context.Background(), domain.Command{
		Path: "sh",
		Args: []string{"-c", "echo line1; echo line2; echo oops >&2"},
		Dir:  t.TempDir(),
	})
	require.NoError(t, err)

	assert.Equal(t, "line1\nline2\n", string(out.Stdout))
	assert.Equal(t, "oops\n", string(out.Stderr))
	assert.Equal(t, 0, out.ExitCode)
	assert.True(t, out.Success())
}

func TestExecutor_Execute_NonZeroExitIsNotAnError(t *testing.T) {
	executor := shell.NewExecutor(nil)

	out, err := executor.Execute(context.Background(), domain.Command{
		Path: "sh",
		Args: []string{"-c", "echo failing >&2; exit 3"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, out.ExitCode)
	assert.False(t, out.Success())
	assert.Equal(t, "failing\n", string(out.Stderr))
}

func TestExecutor_Execute_WorkingDir(t *testing.T) {
	executor := shell.NewExecutor(nil)
	dir := t.TempDir()

	out, err := executor.Execute(context.Background(), domain.Command{
		Path: "sh",
		Args: []string{"-c", "pwd"},
		Dir:  dir,
	})
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, resolved+"\n", string(out.Stdout))
}

func TestExecutor_Execute_EnvironmentOverrides(t *testing.T) {
	t.Setenv("RUSTFLAGS", "-C from-parent")
	executor := shell.NewExecutor(nil)

	out, err := executor.Execute(context.Background(), domain.Command{
		Path: "sh",
		Args: []string{"-c", "echo $RUSTFLAGS"},
		Env:  []string{"RUSTFLAGS=-C debuginfo=0"},
	})
	require.NoError(t, err)

	assert.Equal(t, "-C debuginfo=0\n", string(out.Stdout))
}

func TestExecutor_Execute_SpawnFailure(t *testing.T) {
	executor := shell.NewExecutor(nil)

	out, err := executor.Execute(context.Background(), domain.Command{
		Path: filepath.Join(t.TempDir(), "missing-binary"),
	})

	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "failed to start process")
}

func TestExecutor_Execute_EmptyCommand(t *testing.T) {
	executor := shell.NewExecutor(nil)

	_, err := executor.Execute(context.Background(), domain.Command{})

	assert.ErrorIs(t, err, domain.ErrEmptyCommand)
}

func TestExecutor_Execute_MirrorsOutputToDebugLog(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	gomock.InOrder(
		log.EXPECT().Debug("stdout: part1part2"),
		log.EXPECT().Debug("stdout: tail"),
	)

	executor := shell.NewExecutor(log)

	_, err := executor.Execute(context.Background(), domain.Command{
		Path: "sh",
		Args: []string{"-c", "printf part1; sleep 0.1; echo part2; printf tail"},
	})
	require.NoError(t, err)
}

func TestResolveEnvironment(t *testing.T) {
	sys := []string{"PATH=/usr/bin", "HOME=/root", "RUSTFLAGS=old", "MALFORMED"}
	overrides := []string{"RUSTFLAGS=new", "EXTRA=1"}

	got := shell.ResolveEnvironment(sys, overrides)

	assert.Equal(t, []string{"PATH=/usr/bin", "HOME=/root", "RUSTFLAGS=new", "EXTRA=1"}, got)
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	tool := filepath.Join(dir, "cargo")
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o755)) //nolint:gosec // test executable
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain"), []byte("x"), 0o644))

	got, err := shell.LookPath("cargo", []string{"PATH=" + dir})
	require.NoError(t, err)
	assert.Equal(t, tool, got)

	_, err = shell.LookPath("plain", []string{"PATH=" + dir})
	assert.Error(t, err)

	_, err = shell.LookPath("cargo", nil)
	assert.Error(t, err)
}
