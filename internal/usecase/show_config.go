package usecase

import (
	"context"

	"github.com/runoshun/taskboard/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct{}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	Effective    *domain.Config    // Merged configuration in effect
	GlobalConfig domain.ConfigInfo // Global config file info
	DataConfig   domain.ConfigInfo // Data directory config file info
}

// ShowConfig displays configuration file information.
type ShowConfig struct {
	configManager domain.ConfigManager
	config        *domain.Config
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, config *domain.Config) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		config:        config,
	}
}

// Execute retrieves configuration file information.
func (uc *ShowConfig) Execute(_ context.Context, _ ShowConfigInput) (*ShowConfigOutput, error) {
	effective := uc.config
	if effective == nil {
		effective = domain.NewDefaultConfig()
	}
	return &ShowConfigOutput{
		Effective:    effective,
		GlobalConfig: uc.configManager.GetGlobalConfigInfo(),
		DataConfig:   uc.configManager.GetDataConfigInfo(),
	}, nil
}
