// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/infra/config"
	"github.com/runoshun/taskboard/internal/infra/csvstore"
	"github.com/runoshun/taskboard/internal/infra/gitstore"
	"github.com/runoshun/taskboard/internal/infra/jsonstore"
	"github.com/runoshun/taskboard/internal/infra/logging"
	"github.com/runoshun/taskboard/internal/infra/sqlstore"
	"github.com/runoshun/taskboard/internal/usecase"
	"github.com/runoshun/taskboard/internal/usecase/shared"
)

// Config holds the application paths.
type Config struct {
	DataDir   string // Path to the data directory
	StorePath string // Path to the store file or repository
}

// ResolveDataDir returns $TASKBOARD_DIR if set, otherwise .taskboard under cwd.
func ResolveDataDir(cwd string) string {
	if dir := os.Getenv(domain.DataDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(cwd, domain.DataDirName)
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Store         domain.SnapshotStore
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	FileLogger    domain.Logger

	// Pointer fields
	AppConfig *domain.Config
	Logger    *slog.Logger

	closers []io.Closer

	// Configuration
	Config Config
}

// New creates a new Container for the given data directory.
func New(dataDir string) (*Container, error) {
	configLoader := config.NewLoader(dataDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	storePath := resolveStorePath(dataDir, appConfig.Store)
	store, err := NewStore(appConfig.Store, storePath)
	if err != nil {
		return nil, err
	}

	level := logging.ParseLevel(appConfig.Log.Level)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	fileLogger := logging.New(dataDir, level)

	c := &Container{
		Store:         store,
		Clock:         domain.RealClock{},
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(dataDir),
		FileLogger:    fileLogger,
		AppConfig:     appConfig,
		Logger:        logger,
		Config: Config{
			DataDir:   dataDir,
			StorePath: storePath,
		},
		closers: []io.Closer{fileLogger},
	}
	if closer, ok := store.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, appConfig *domain.Config, store domain.SnapshotStore, clock domain.Clock, logger *slog.Logger) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	return &Container{
		Store:     store,
		Clock:     clock,
		AppConfig: appConfig,
		Logger:    logger,
		Config:    cfg,
	}
}

// NewStore creates the snapshot store selected by the [store] section.
func NewStore(sc domain.StoreConfig, path string) (domain.SnapshotStore, error) {
	switch sc.Type {
	case domain.StoreCSV, "":
		return csvstore.New(path), nil
	case domain.StoreJSON:
		return jsonstore.New(path), nil
	case domain.StoreGit:
		namespace := sc.Namespace
		if namespace == "" {
			namespace = domain.DefaultNamespace
		}
		return gitstore.New(path, namespace), nil
	case domain.StoreSQLite:
		return sqlstore.New(path), nil
	default:
		return nil, fmt.Errorf("unknown store type %q", sc.Type)
	}
}

// resolveStorePath returns the configured path, relative to dataDir, or the
// default location for the backend.
func resolveStorePath(dataDir string, sc domain.StoreConfig) string {
	if sc.Path == "" {
		return domain.StorePath(dataDir, sc.Type)
	}
	if filepath.IsAbs(sc.Path) {
		return sc.Path
	}
	return filepath.Join(dataDir, sc.Path)
}

// Close releases open files and database handles.
func (c *Container) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

// Board returns a board bound to the container's store and config.
func (c *Container) Board() *shared.Board {
	return shared.NewBoard(c.Store, c.AppConfig, c.Clock)
}

// UseCase factory methods

// InitStoreUseCase returns a new InitStore use case.
func (c *Container) InitStoreUseCase() *usecase.InitStore {
	return usecase.NewInitStore(c.Store, c.ConfigManager)
}

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Board(), c.FileLogger)
}

// NewEpicUseCase returns a new NewEpic use case.
func (c *Container) NewEpicUseCase() *usecase.NewEpic {
	return usecase.NewNewEpic(c.Board(), c.FileLogger)
}

// NewSubtaskUseCase returns a new NewSubtask use case.
func (c *Container) NewSubtaskUseCase() *usecase.NewSubtask {
	return usecase.NewNewSubtask(c.Board(), c.FileLogger)
}

// EditItemUseCase returns a new EditItem use case.
func (c *Container) EditItemUseCase() *usecase.EditItem {
	return usecase.NewEditItem(c.Board(), c.FileLogger)
}

// ShowItemUseCase returns a new ShowItem use case.
func (c *Container) ShowItemUseCase() *usecase.ShowItem {
	return usecase.NewShowItem(c.Board())
}

// DeleteItemUseCase returns a new DeleteItem use case.
func (c *Container) DeleteItemUseCase() *usecase.DeleteItem {
	return usecase.NewDeleteItem(c.Board(), c.FileLogger)
}

// ClearItemsUseCase returns a new ClearItems use case.
func (c *Container) ClearItemsUseCase() *usecase.ClearItems {
	return usecase.NewClearItems(c.Board(), c.FileLogger)
}

// ListItemsUseCase returns a new ListItems use case.
func (c *Container) ListItemsUseCase() *usecase.ListItems {
	return usecase.NewListItems(c.Board())
}

// ShowAgendaUseCase returns a new ShowAgenda use case.
func (c *Container) ShowAgendaUseCase() *usecase.ShowAgenda {
	return usecase.NewShowAgenda(c.Board())
}

// ShowHistoryUseCase returns a new ShowHistory use case.
func (c *Container) ShowHistoryUseCase() *usecase.ShowHistory {
	return usecase.NewShowHistory(c.Board())
}

// ImportPlanUseCase returns a new ImportPlan use case.
func (c *Container) ImportPlanUseCase() *usecase.ImportPlan {
	return usecase.NewImportPlan(c.Board(), c.FileLogger)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.AppConfig)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}
