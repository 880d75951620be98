// Package build holds build-time information.
// Every value can be overwritten with -ldflags "-X go.trai.ch/replay/internal/build.<Name>=<value>".
package build

import "go.trai.ch/replay/internal/core/domain"

var (
	// Version is the application version.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"

	// BuildTool is the build tool used to capture the reference invocation.
	BuildTool = "cargo"
	// Compiler is the compiler driver each entry is built with.
	Compiler = "rustc"
	// OptLevel is the optimisation setting, "debug" or "release".
	OptLevel = "debug"
)

// Toolchain returns the toolchain this binary was built against.
func Toolchain() domain.Toolchain {
	return domain.Toolchain{
		BuildTool: BuildTool,
		Compiler:  Compiler,
		OptLevel:  OptLevel,
	}
}
