package ports

import "go.trai.ch/depedit/internal/core/domain"

// SettingsLoader defines the interface for loading user settings.
//
//go:generate mockgen -source=settings_loader.go -destination=mocks/mock_settings_loader.go -package=mocks
type SettingsLoader interface {
	// Load resolves the settings for the given working directory.
	Load(cwd string) (domain.Settings, error)
}
