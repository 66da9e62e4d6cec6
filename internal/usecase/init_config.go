package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskboard/internal/domain"
)

// InitConfigInput contains the input for the InitConfig use case.
type InitConfigInput struct {
	Config *domain.Config // Values rendered into the file (nil = defaults)
	Global bool           // Write the global config instead of the data dir one
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Path string // Path of the created file
}

// InitConfig writes a commented config file.
type InitConfig struct {
	configManager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager) *InitConfig {
	return &InitConfig{configManager: configManager}
}

// Execute creates the config file. Returns domain.ErrConfigExists if it is already present.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	cfg := in.Config
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}

	if in.Global {
		if err := uc.configManager.InitGlobalConfig(cfg); err != nil {
			return nil, fmt.Errorf("init global config: %w", err)
		}
		return &InitConfigOutput{Path: uc.configManager.GetGlobalConfigInfo().Path}, nil
	}

	if err := uc.configManager.InitDataConfig(cfg); err != nil {
		return nil, fmt.Errorf("init data config: %w", err)
	}
	return &InitConfigOutput{Path: uc.configManager.GetDataConfigInfo().Path}, nil
}
