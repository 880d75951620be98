// Package cas implements the entry result store, one JSON file per entry.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/replay/internal/core/domain"
	"go.trai.ch/zerr"
)

const recordExt = ".json"

// Store implements ports.ResultStore using a file-per-entry strategy.
// Files are named after the xxhash of the entry name, so any name maps to a safe file name.
type Store struct{}

// NewStore creates a new ResultStore. Every operation takes the batch root explicitly.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the last record stored for entry.
// It returns nil, nil when the entry has never been recorded.
func (s *Store) Get(root, entry string) (*domain.EntryRecord, error) {
	filename := s.getFilename(root, entry)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var record domain.EntryRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, domain.Annotate(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "entry", entry)
	}

	return &record, nil
}

// Put stores the record, replacing any previous record of the same entry.
func (s *Store) Put(root string, record domain.EntryRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.getFilename(root, record.Entry)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	// Write then rename so readers never observe a partial record.
	tmp := filename + ".tmp"
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Rename(tmp, filename); err != nil {
		_ = os.Remove(tmp)
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}

// List returns every stored record ordered by entry name.
// A missing store directory yields an empty list.
func (s *Store) List(root string) ([]domain.EntryRecord, error) {
	dir := filepath.Join(root, domain.DefaultResultsPath())
	files, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	records := make([]domain.EntryRecord, 0, len(files))
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), recordExt) {
			continue
		}

		//nolint:gosec // Path is constructed from trusted directory and listed file name
		data, err := os.ReadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
		}

		var record domain.EntryRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, domain.Annotate(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "file", f.Name())
		}
		records = append(records, record)
	}

	slices.SortFunc(records, func(a, b domain.EntryRecord) int {
		return strings.Compare(a.Entry, b.Entry)
	})
	return records, nil
}

func (s *Store) getFilename(root, entry string) string {
	name := strconv.FormatUint(xxhash.Sum64String(entry), 16)
	return filepath.Join(root, domain.DefaultResultsPath(), name+recordExt)
}
