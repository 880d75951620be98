package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// FlagBuilder holds the compiler flags shared by every entry of a batch.
// It implements ports.BinaryBuilder.
type FlagBuilder struct {
	// CrateName overrides the crate name. When empty it is derived from the source file name.
	CrateName string
	Edition   string
	LibDirs   []string
	// Externs maps crate names to library paths passed with --extern.
	Externs map[string]string
	// Flags are passed verbatim after the structured flags.
	Flags []string
}

// AppendArgs appends the shared flags followed by the source path.
// The output is deterministic: externs are emitted in name order.
func (b FlagBuilder) AppendArgs(args []string, source string) []string {
	args = append(args, "--crate-name", b.crateName(source), "--crate-type", "bin")
	if b.Edition != "" {
		args = append(args, "--edition="+b.Edition)
	}
	for _, dir := range b.LibDirs {
		args = append(args, "-L", dir)
	}

	names := make([]string, 0, len(b.Externs))
	for name := range b.Externs {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if path := b.Externs[name]; path != "" {
			args = append(args, "--extern", name+"="+path)
		} else {
			args = append(args, "--extern", name)
		}
	}

	args = append(args, b.Flags...)
	return append(args, source)
}

func (b FlagBuilder) crateName(source string) string {
	if b.CrateName != "" {
		return b.CrateName
	}
	base := filepath.Base(source)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(name, "-", "_")
}

// RustFlags is the flag set injected into the build tool environment as RUSTFLAGS.
// It implements ports.EnvSetter.
type RustFlags string

// Environ returns the environment overrides carrying the flags.
func (f RustFlags) Environ() []string {
	if strings.TrimSpace(string(f)) == "" {
		return nil
	}
	return []string{"RUSTFLAGS=" + string(f)}
}
