package domain

import "path/filepath"

const (
	// ReplayDirName is the name of the internal state directory.
	ReplayDirName = ".replay"

	// ResultsDirName is the name of the entry result store directory.
	ResultsDirName = "results"

	// TargetDirName is the build tool's output directory.
	TargetDirName = "target"

	// ScratchDirName is the directory under target holding the shared batch executable.
	ScratchDirName = "batch"

	// ConfigFileName is the name of the batch configuration file.
	ConfigFileName = "replay.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultScratchDir returns the relative directory holding the batch executable.
// It joins ., target, and batch.
func DefaultScratchDir() string {
	return filepath.Join(".", TargetDirName, ScratchDirName)
}

// DefaultResultsPath returns the default path for the entry result store.
// It joins .replay and results.
func DefaultResultsPath() string {
	return filepath.Join(ReplayDirName, ResultsDirName)
}
