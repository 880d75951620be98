package domain

import "time"

// ProcessOutput is the raw result of a child process that was spawned successfully.
// The exit status is reported as-is; a non-zero code is not an error at this level.
type ProcessOutput struct {
	Stdout   []byte        `json:"-"`
	Stderr   []byte        `json:"-"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration"`
}

// Success reports whether the process exited with status zero.
func (o *ProcessOutput) Success() bool {
	return o != nil && o.ExitCode == 0
}
