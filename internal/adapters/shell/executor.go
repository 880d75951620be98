// Package shell provides the process executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/replay/internal/core/domain"
	"go.trai.ch/replay/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec.
// Output is captured in full and mirrored line by line to the logger at debug level.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs the command and waits for it to exit.
// It merges environments with the following priority (low to high):
// 1. os.Environ() (System base)
// 2. cmd.Env (Invocation overrides)
func (e *Executor) Execute(ctx context.Context, cmd domain.Command) (*domain.ProcessOutput, error) {
	if cmd.Path == "" {
		return nil, domain.ErrEmptyCommand
	}

	cmdEnv := resolveEnvironment(os.Environ(), cmd.Env)

	// Resolve bare program names against the merged PATH.
	executable := cmd.Path
	if !strings.ContainsRune(cmd.Path, filepath.Separator) && !strings.ContainsRune(cmd.Path, '/') {
		if lp, err := lookPath(cmd.Path, cmdEnv); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // command composed by the pipeline

	// exec.CommandContext sets Args[0] to the executable path.
	// Preserve the name as invoked.
	if len(c.Args) > 0 {
		c.Args[0] = cmd.Path
	}

	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}
	c.Env = cmdEnv

	var stdout, stderr bytes.Buffer
	stdoutLog := &logWriter{logger: e.logger, stream: "stdout"}
	stderrLog := &logWriter{logger: e.logger, stream: "stderr"}
	c.Stdout = io.MultiWriter(&stdout, stdoutLog)
	c.Stderr = io.MultiWriter(&stderr, stderrLog)

	start := time.Now()
	err := c.Run()
	duration := time.Since(start)

	_ = stdoutLog.Close()
	_ = stderrLog.Close()

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, zerr.With(zerr.Wrap(err, "failed to start process"), "command", cmd.Path)
		}
		exitCode = exitErr.ExitCode()
	}

	return &domain.ProcessOutput{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: exitCode,
		Duration: duration,
	}, nil
}

type logWriter struct {
	logger ports.Logger
	stream string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	if w.logger == nil {
		return len(p), nil
	}

	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}

		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	w.logger.Debug(w.stream + ": " + msg)
}

// resolveEnvironment merges environment variables with the defined priority.
// Later entries override earlier ones with the same key.
func resolveEnvironment(sysEnv, overrides []string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	order := make([]string, 0, len(sysEnv)+len(overrides))

	apply := func(entries []string) {
		for _, entry := range entries {
			k, v, ok := strings.Cut(entry, "=")
			if !ok {
				continue
			}
			if _, exists := envMap[k]; !exists {
				order = append(order, k)
			}
			envMap[k] = v
		}
	}

	apply(sysEnv)
	apply(overrides)

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
