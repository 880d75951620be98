package ports

// BinaryBuilder knows the compiler flags of a batch.
// It is treated as opaque: the pipeline only asks it to extend an argument list.
type BinaryBuilder interface {
	// AppendArgs appends the builder's flags and then the source path to args.
	AppendArgs(args []string, source string) []string
}

// EnvSetter contributes environment overrides to a build tool invocation.
type EnvSetter interface {
	// Environ returns "KEY=VALUE" pairs.
	Environ() []string
}
