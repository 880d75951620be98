package domain

import "go.trai.ch/zerr"

var (
	// ErrBuildToolSpawnFailed is returned when the build tool process cannot be started during capture.
	ErrBuildToolSpawnFailed = zerr.New("failed to spawn build tool")

	// ErrNonTextOutput is returned when the build tool's diagnostic stream is not valid UTF-8.
	ErrNonTextOutput = zerr.New("build tool produced non-UTF-8 output")

	// ErrNoInvocationFound is returned when the build tool output announces no compiler invocation.
	ErrNoInvocationFound = zerr.New("no running command in build tool output")

	// ErrScratchDirCreateFailed is returned when the scratch directory for the batch binary cannot be created.
	ErrScratchDirCreateFailed = zerr.New("unable to create batch executable directory; check your access rights")

	// ErrCompilerSpawnFailed is returned when the compiler driver cannot be started for an entry.
	ErrCompilerSpawnFailed = zerr.New("failed to spawn compiler driver")

	// ErrRunFailed is returned when the scratch binary cannot be started.
	ErrRunFailed = zerr.New("failed to run entry binary")

	// ErrCompileFailed is returned when the compiler driver exits with a non-zero status.
	ErrCompileFailed = zerr.New("compiler exited with non-zero status")

	// ErrEntryExitStatus is returned when the entry binary exits with a non-zero status.
	ErrEntryExitStatus = zerr.New("entry exited with non-zero status")

	// ErrEntryInterrupted is returned when the batch is cancelled while an entry's process runs.
	// The process was killed, so its exit status says nothing about the entry.
	ErrEntryInterrupted = zerr.New("entry interrupted")

	// ErrEmptyCommand is returned when a command without a program path is executed.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrEntryNotFound is returned when a requested entry is not defined in the configuration.
	ErrEntryNotFound = zerr.New("entry not found")

	// ErrDuplicateEntry is returned when two entries share the same name.
	ErrDuplicateEntry = zerr.New("duplicate entry name")

	// ErrInvalidEntryName is returned when an entry name contains invalid characters.
	ErrInvalidEntryName = zerr.New("entry name can only contain alphanumeric characters, hyphens and underscores")

	// ErrMissingSource is returned when an entry does not declare a source file.
	ErrMissingSource = zerr.New("entry has no source file")

	// ErrMissingReference is returned when no reference entry can be determined for capture.
	ErrMissingReference = zerr.New("no reference entry to capture")

	// ErrUnsupportedVersion is returned when the configuration file declares an unknown schema version.
	ErrUnsupportedVersion = zerr.New("unsupported configuration version")

	// ErrNoEntriesSpecified is returned when a command requires at least one entry.
	ErrNoEntriesSpecified = zerr.New("no entries specified")

	// ErrBatchFailed is returned when at least one entry of a batch failed.
	ErrBatchFailed = zerr.New("batch execution failed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when no config file can be found.
	ErrConfigNotFound = zerr.New("could not find replay.yaml")

	// ErrStoreCreateFailed is returned when the result store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create result store directory")

	// ErrStoreReadFailed is returned when a stored result cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read entry result")

	// ErrStoreUnmarshalFailed is returned when a stored result cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal entry result")

	// ErrStoreMarshalFailed is returned when a result cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal entry result")

	// ErrStoreWriteFailed is returned when a result cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write entry result")
)

// Annotate attaches a key-value pair to err while keeping err itself in the chain,
// so errors.Is still matches sentinels.
func Annotate(err error, key string, value any) error {
	if err == nil {
		return nil
	}
	return zerr.With(zerr.Wrap(err, ""), key, value)
}
