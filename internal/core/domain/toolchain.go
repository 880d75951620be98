package domain

// OptLevelRelease is the optimisation setting that builds with --release.
const OptLevelRelease = "release"

// Toolchain describes the build tool and compiler driver this binary was built against.
// The values are fixed at link time and are not configurable at runtime.
type Toolchain struct {
	// BuildTool is the dependency-aware build tool, e.g. "cargo".
	BuildTool string
	// Compiler is the compiler driver path, e.g. "rustc" or "/usr/bin/rustc".
	Compiler string
	// OptLevel is "release" or "debug".
	OptLevel string
}

// Release reports whether the build tool should be asked for a release build.
func (t Toolchain) Release() bool {
	return t.OptLevel == OptLevelRelease
}
