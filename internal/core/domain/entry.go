package domain

import (
	"path/filepath"
	"time"
)

// Entry is one independently buildable and runnable program unit of a batch.
type Entry struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	// Run requests a linked executable that is executed after a successful build.
	// When false the entry is only validated with a dep-info build.
	Run bool `json:"run"`
}

// EntryState tracks how far an entry progressed through build and run.
type EntryState string

const (
	// StateUnbuilt is the initial state.
	StateUnbuilt EntryState = "unbuilt"
	// StateBuiltNoBinary means a dep-info build succeeded; no executable exists.
	StateBuiltNoBinary EntryState = "built-no-binary"
	// StateBuiltBinary means a link build succeeded and the scratch binary is present.
	StateBuiltBinary EntryState = "built-binary"
	// StateExecuted means the scratch binary ran to completion with status zero.
	StateExecuted EntryState = "executed"
	// StateFailed means the build or run returned an error or a non-zero status.
	StateFailed EntryState = "failed"
)

// AfterBuild returns the state reached by a successful build in the given emit mode.
func AfterBuild(mode EmitMode) EntryState {
	if mode == EmitLink {
		return StateBuiltBinary
	}
	return StateBuiltNoBinary
}

// EntryRecord is the persisted outcome of one entry in one batch run.
type EntryRecord struct {
	RunID      string         `json:"run_id"`
	Entry      string         `json:"entry"`
	Source     string         `json:"source"`
	SourceHash string         `json:"source_hash,omitzero"`
	State      EntryState     `json:"state"`
	Command    string         `json:"command,omitzero"`
	Build      *ProcessOutput `json:"build,omitzero"`
	Run        *ProcessOutput `json:"run,omitzero"`
	Error      string         `json:"error,omitzero"`
	Timestamp  time.Time      `json:"timestamp"`
	Invocation Invocation     `json:"invocation,omitzero"`
}

// Failed reports whether the entry ended in the failed state.
func (r *EntryRecord) Failed() bool {
	return r.State == StateFailed
}

// Stale reports whether the record was built from a different source than currentHash.
// Unknown hashes are never stale.
func (r *EntryRecord) Stale(currentHash string) bool {
	return r.SourceHash != "" && currentHash != "" && r.SourceHash != currentHash
}

// Batch is a suite of entries that share one build configuration.
type Batch struct {
	// Root is the directory containing the configuration file.
	Root string
	// ManifestDir is the working directory for the build tool and the compiler driver.
	ManifestDir string
	// Reference names the entry whose build tool invocation is captured.
	Reference string
	// RustFlags are injected into the build tool environment during capture.
	RustFlags RustFlags
	// Builder appends the shared compiler flags and the entry source.
	Builder FlagBuilder
	// FailFast stops the batch at the first failed entry.
	FailFast bool
	Entries  []Entry
}

// Entry returns the entry with the given name.
func (b *Batch) Entry(name string) (Entry, bool) {
	for _, e := range b.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// SourcePath resolves an entry source against the manifest directory,
// where the compiler driver runs.
func (b *Batch) SourcePath(source string) string {
	if filepath.IsAbs(source) || b.ManifestDir == "" {
		return source
	}
	return filepath.Join(b.ManifestDir, source)
}

// BatchReport summarises one batch run.
type BatchReport struct {
	RunID      string
	Invocation Invocation
	Records    []EntryRecord
	Duration   time.Duration
}

// Failed returns the records of entries that failed.
func (r *BatchReport) Failed() []EntryRecord {
	var failed []EntryRecord
	for _, rec := range r.Records {
		if rec.Failed() {
			failed = append(failed, rec)
		}
	}
	return failed
}
