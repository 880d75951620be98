package ports

import "go.trai.ch/replay/internal/core/domain"

// ResultStore defines the interface for storing and retrieving entry results.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ResultStore interface {
	// Get retrieves the last record for an entry.
	// Returns nil, nil if not found.
	Get(root, entry string) (*domain.EntryRecord, error)

	// Put stores the record, replacing the previous one for the same entry.
	Put(root string, record domain.EntryRecord) error

	// List returns every stored record, ordered by entry name.
	List(root string) ([]domain.EntryRecord, error)
}
