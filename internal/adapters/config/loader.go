// Package config provides the configuration loader for replay.
package config

import (
	"os"
	"path/filepath"
	"regexp"

	"go.trai.ch/replay/internal/core/domain"
	"go.trai.ch/replay/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

var validEntryNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// Load finds replay.yaml in cwd or one of its parents and returns the batch it describes.
func (l *Loader) Load(cwd string) (*domain.Batch, error) {
	root, err := l.DiscoverRoot(cwd)
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(root, domain.ConfigFileName)

	var file File
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, domain.Annotate(err, "path", configPath)
	}

	if file.Version != "" && file.Version != SupportedVersion {
		return nil, domain.Annotate(domain.ErrUnsupportedVersion, "version", file.Version)
	}

	entries, err := buildEntries(file.Entries)
	if err != nil {
		return nil, err
	}

	reference := file.Reference
	if reference == "" && len(entries) > 0 {
		reference = entries[0].Name
	}
	if reference != "" && !validEntryNameRegex.MatchString(reference) {
		return nil, domain.Annotate(domain.ErrInvalidEntryName, "reference", reference)
	}
	if len(entries) == 0 {
		l.Logger.Warn(domain.ConfigFileName + " defines no entries")
	}

	return &domain.Batch{
		Root:        root,
		ManifestDir: resolveDir(root, file.ManifestDir),
		Reference:   reference,
		RustFlags:   domain.RustFlags(file.RustFlags),
		Builder: domain.FlagBuilder{
			CrateName: file.Builder.CrateName,
			Edition:   file.Builder.Edition,
			LibDirs:   file.Builder.LibDirs,
			Externs:   file.Builder.Externs,
			Flags:     file.Builder.Flags,
		},
		FailFast: file.FailFast,
		Entries:  entries,
	}, nil
}

// DiscoverRoot walks up from cwd and returns the first directory containing replay.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	currentDir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "cwd", cwd)
	}

	for {
		if _, err := os.Stat(filepath.Join(currentDir, domain.ConfigFileName)); err == nil {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", domain.Annotate(domain.ErrConfigNotFound, "cwd", cwd)
}

func buildEntries(dtos []EntryDTO) ([]domain.Entry, error) {
	entries := make([]domain.Entry, 0, len(dtos))
	seen := make(map[string]bool, len(dtos))

	for _, dto := range dtos {
		if err := validateEntryName(dto.Name); err != nil {
			return nil, err
		}
		if seen[dto.Name] {
			return nil, domain.Annotate(domain.ErrDuplicateEntry, "entry", dto.Name)
		}
		seen[dto.Name] = true

		if dto.Source == "" {
			return nil, domain.Annotate(domain.ErrMissingSource, "entry", dto.Name)
		}

		run := true
		if dto.Run != nil {
			run = *dto.Run
		}

		entries = append(entries, domain.Entry{
			Name:   dto.Name,
			Source: filepath.Clean(dto.Source),
			Run:    run,
		})
	}

	return entries, nil
}

// validateEntryName checks that the name can be used as a binary and file name.
func validateEntryName(name string) error {
	if !validEntryNameRegex.MatchString(name) {
		return domain.Annotate(domain.ErrInvalidEntryName, "entry", name)
	}
	return nil
}

// resolveDir resolves a configured directory against the configuration root.
// An empty value means the root itself.
func resolveDir(root, configured string) string {
	if configured == "" {
		return filepath.Clean(root)
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Clean(filepath.Join(root, configured))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered by the loader
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
