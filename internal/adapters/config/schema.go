package config

// SupportedVersion is the only configuration schema version understood by the loader.
const SupportedVersion = "1"

// File represents the structure of the replay.yaml configuration file.
type File struct {
	Version     string     `yaml:"version"`
	ManifestDir string     `yaml:"manifest_dir"`
	Reference   string     `yaml:"reference"`
	RustFlags   string     `yaml:"rustflags"`
	FailFast    bool       `yaml:"fail_fast"`
	Builder     BuilderDTO `yaml:"builder"`
	Entries     []EntryDTO `yaml:"entries"`
}

// BuilderDTO represents the compiler flags shared by every entry.
type BuilderDTO struct {
	CrateName string            `yaml:"crate_name"`
	Edition   string            `yaml:"edition"`
	LibDirs   []string          `yaml:"lib_dirs"`
	Externs   map[string]string `yaml:"externs"`
	Flags     []string          `yaml:"flags"`
}

// EntryDTO represents one program entry.
type EntryDTO struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	// Run defaults to true when omitted.
	Run *bool `yaml:"run"`
}
