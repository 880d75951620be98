package ports

// ScratchAllocator hands out the executable path shared by every entry of a process.
//
//go:generate mockgen -source=scratch.go -destination=mocks/mock_scratch.go -package=mocks
type ScratchAllocator interface {
	// Path returns the same path, or the same error, on every call.
	Path() (string, error)
	// Dir returns the directory that holds the path, without creating it.
	Dir() string
}
