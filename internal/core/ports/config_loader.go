package ports

import "go.trai.ch/replay/internal/core/domain"

// ConfigLoader defines the interface for loading the batch configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration starting at cwd and returns the batch it describes.
	Load(cwd string) (*domain.Batch, error)

	// DiscoverRoot walks up from cwd to the directory containing replay.yaml.
	DiscoverRoot(cwd string) (string, error)
}
