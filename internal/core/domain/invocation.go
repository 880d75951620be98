package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	// InvocationMarker is the word cargo prints before every subprocess it launches in verbose mode.
	InvocationMarker = "Running"

	invocationQuote = "`"
)

// Invocation is one compiler command line announced by the build tool.
// It has no identity beyond its text.
type Invocation string

// String returns the command line.
func (i Invocation) String() string {
	return string(i)
}

// Program returns the first word of the command line, usually the compiler driver path.
func (i Invocation) Program() string {
	fields := strings.Fields(string(i))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ExtractInvocation scans the build tool's verbose diagnostic output for the last
// "Running `...`" announcement and returns the announced command line.
//
// A build may announce several subprocesses (build scripts, link helpers); the last
// one is the compiler call for the primary artifact.
func ExtractInvocation(output []byte) (Invocation, error) {
	if !utf8.Valid(output) {
		return "", NewBatchError(KindPrecondition, ErrNonTextOutput, nil)
	}

	var last string
	found := false

	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimLeft(strings.TrimSuffix(line, "\r"), " \t")
		if strings.HasPrefix(line, InvocationMarker+" "+invocationQuote) {
			last = line
			found = true
		}
	}

	if !found {
		return "", NewBatchError(KindPrecondition, ErrNoInvocationFound, nil)
	}

	return trimInvocation(last), nil
}

func trimInvocation(line string) Invocation {
	line = strings.TrimPrefix(strings.TrimSpace(line), InvocationMarker)
	line = strings.TrimSpace(line)
	if len(line) >= 2 && strings.HasPrefix(line, invocationQuote) && strings.HasSuffix(line, invocationQuote) {
		line = line[1 : len(line)-1]
	}
	return Invocation(line)
}
