package ports

//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks

// Hasher fingerprints source files so reports can tell when an entry changed.
type Hasher interface {
	// HashFile returns a stable content hash of the file at path.
	HashFile(path string) (string, error)
}
