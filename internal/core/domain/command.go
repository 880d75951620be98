package domain

import "strings"

// Command is a fully composed process invocation.
// It is built fresh for every call and never mutated after the process is spawned.
type Command struct {
	// Path is the program to execute. Bare names are looked up in PATH.
	Path string
	// Args are the arguments, without the program name.
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds "KEY=VALUE" overrides applied on top of the process environment.
	Env []string
}

// Argv returns the program followed by its arguments.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Path)
	return append(argv, c.Args...)
}

// String renders the command as a single line for logs and reports.
func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}
