package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/taskboard/internal/domain"
)

// InitStoreInput contains the input parameters for InitStore.
type InitStoreInput struct {
	Config *domain.Config // Values rendered into the new config file (nil = defaults)
}

// InitStoreOutput contains the output from InitStore.
type InitStoreOutput struct {
	ConfigPath    string // Path of the data dir config file
	ConfigCreated bool   // True if a config file was written
}

// InitStore initializes the snapshot store and writes a default config file.
type InitStore struct {
	store         domain.SnapshotStore
	configManager domain.ConfigManager
}

// NewInitStore creates a new InitStore use case.
func NewInitStore(store domain.SnapshotStore, configManager domain.ConfigManager) *InitStore {
	return &InitStore{
		store:         store,
		configManager: configManager,
	}
}

// Execute creates the store. An existing config file is left untouched.
// Returns domain.ErrAlreadyInitialized if the store already exists.
func (uc *InitStore) Execute(_ context.Context, in InitStoreInput) (*InitStoreOutput, error) {
	if uc.store.IsInitialized() {
		return nil, domain.ErrAlreadyInitialized
	}
	if err := uc.store.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	out := &InitStoreOutput{}
	if uc.configManager == nil {
		return out, nil
	}

	cfg := in.Config
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}
	err := uc.configManager.InitDataConfig(cfg)
	switch {
	case err == nil:
		out.ConfigCreated = true
	case errors.Is(err, domain.ErrConfigExists):
	default:
		return nil, fmt.Errorf("create config: %w", err)
	}
	out.ConfigPath = uc.configManager.GetDataConfigInfo().Path
	return out, nil
}
