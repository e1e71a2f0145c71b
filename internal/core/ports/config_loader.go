package ports

import "go.trai.ch/memo/internal/core/domain"

// ConfigLoader defines the interface for loading the memo configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load returns the built-in defaults overlaid with the YAML file at path.
	// A missing file yields the defaults.
	Load(path string) (domain.Config, error)
}
