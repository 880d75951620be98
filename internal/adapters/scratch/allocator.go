// Package scratch allocates the single executable path shared by every entry of a batch.
package scratch

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"go.trai.ch/replay/internal/core/domain"
)

// Allocator hands out one scratch executable path per process.
// The path is composed on first use and never changes afterwards; the file
// itself is overwritten by every link build.
type Allocator struct {
	dir    string
	source func() uint64
	path   func() (string, error)
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithSource replaces the random source used to name the executable.
func WithSource(source func() uint64) Option {
	return func(a *Allocator) {
		a.source = source
	}
}

// NewAllocator creates an Allocator placing the executable in dir.
func NewAllocator(dir string, opts ...Option) *Allocator {
	a := &Allocator{
		dir:    dir,
		source: rand.Uint64,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.path = sync.OnceValues(a.allocate)
	return a
}

// Dir returns the directory holding the scratch executable.
func (a *Allocator) Dir() string {
	return a.dir
}

// Path returns the scratch executable path, creating its directory on first call.
// Later calls return the same path, or the same error.
func (a *Allocator) Path() (string, error) {
	return a.path()
}

func (a *Allocator) allocate() (string, error) {
	dir, err := filepath.Abs(a.dir)
	if err != nil {
		return "", domain.NewBatchError(domain.KindPrecondition, domain.ErrScratchDirCreateFailed,
			domain.Annotate(err, "path", a.dir))
	}

	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return "", domain.NewBatchError(domain.KindPrecondition, domain.ErrScratchDirCreateFailed,
			domain.Annotate(err, "path", dir))
	}

	name := strconv.FormatUint(a.source(), 16) + executableSuffix(runtime.GOOS)
	return filepath.Join(dir, name), nil
}

func executableSuffix(goos string) string {
	if goos == "windows" {
		return ".exe"
	}
	return ""
}
