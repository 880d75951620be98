package domain

// EmitMode selects what the compiler driver produces.
type EmitMode string

const (
	// EmitLink produces a linked, runnable executable.
	EmitLink EmitMode = "link"
	// EmitDepInfo produces only dependency information. It is a cheap validation pass
	// that leaves no executable behind.
	EmitDepInfo EmitMode = "dep-info"
)

// EmitModeFor returns the emit mode required when the result will or will not be executed.
func EmitModeFor(willRun bool) EmitMode {
	if willRun {
		return EmitLink
	}
	return EmitDepInfo
}

// Flag returns the compiler driver argument selecting this mode.
func (m EmitMode) Flag() string {
	return "--emit=" + string(m)
}
