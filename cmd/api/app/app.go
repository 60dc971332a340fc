package app

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"go.uber.org/zap"

	"course-service/cmd/api/di"
	"course-service/cmd/api/server"
	"course-service/internal/config"
	"course-service/pkg/logger"
)

// App represents the application
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Server    *server.Server
	Container *di.Container
}

// New loads configuration from configPath and builds the application.
func New(configPath string) (*App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := initLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return NewWithConfig(cfg, l)
}

// NewWithConfig builds the application from an already loaded configuration.
func NewWithConfig(cfg *config.Config, l *zap.Logger) (*App, error) {
	container, err := di.NewContainer(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	return &App{
		Config:    cfg,
		Logger:    l,
		Server:    server.New(cfg, l, container),
		Container: container,
	}, nil
}

// Run migrates the schema, seeds demo data when configured and serves
// until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.Logger.Info("starting application",
		zap.String("service", a.Config.Logger.ServiceName),
		zap.String("version", a.Config.Logger.ServiceVersion),
		zap.String("environment", a.Config.App.Env),
		zap.String("db_driver", a.Config.DB.Driver),
	)

	if err := a.Migrate(ctx); err != nil {
		return err
	}
	if a.Config.App.SeedOnStart {
		if err := a.Seed(ctx); err != nil {
			return err
		}
	}

	if err := a.Server.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	a.Logger.Info("application shutdown complete")
	return nil
}

// Migrate creates or updates the database schema.
func (a *App) Migrate(ctx context.Context) error {
	return a.Container.Migrate(ctx)
}

// Seed loads the demo users, categories and orders into an empty database.
func (a *App) Seed(ctx context.Context) error {
	return a.Container.Seed(ctx)
}

// Close releases the database and Redis connections and flushes the logger.
func (a *App) Close() error {
	var errs []error
	if a.Container != nil {
		if err := a.Container.Close(); err != nil {
			errs = append(errs, fmt.Errorf("container close: %w", err))
		}
	}
	// stdout and stderr cannot be synced on most terminals
	if err := a.Logger.Sync(); err != nil && !errors.Is(err, syscall.EINVAL) && !errors.Is(err, syscall.ENOTTY) {
		errs = append(errs, fmt.Errorf("logger sync: %w", err))
	}
	return errors.Join(errs...)
}

// initLogger initializes the application logger
func initLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.NewWithConfig(logger.Config{
		Level:          cfg.Logger.Level,
		Format:         cfg.Logger.Format,
		OutputPath:     cfg.Logger.OutputPath,
		EnableSampling: cfg.Logger.EnableSampling,
		ServiceName:    cfg.Logger.ServiceName,
		ServiceVersion: cfg.Logger.ServiceVersion,
		Environment:    cfg.App.Env,
	})
}
