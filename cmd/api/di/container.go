package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-service/cmd/api/infrastructure"
	"course-service/internal/adapter/cache"
	"course-service/internal/adapter/db/store"
	ginhandler "course-service/internal/adapter/gin/handler"
	grpcadapter "course-service/internal/adapter/grpc"
	"course-service/internal/adapter/grpc/middleware"
	"course-service/internal/adapter/repository/cached"
	"course-service/internal/config"
	"course-service/internal/usecase/category"
	"course-service/internal/usecase/user"
	redisclient "course-service/pkg/redis"
	"course-service/pkg/security"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	DB              *gorm.DB
	RedisClient     *redisclient.Client // nil when Redis is disabled
	Registry        *prometheus.Registry
	Hasher          *security.PasswordHasher
	UserService     user.Service
	CategoryService category.Service
	RateLimiter     *middleware.RateLimiter
	UserHandler     *ginhandler.UserHandler
	CategoryHandler *ginhandler.CategoryHandler
	Catalog         *grpcadapter.CatalogService
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		_ = infrastructure.CloseDatabase(db)
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	var (
		userRepo     user.Repository     = store.NewUserRepository(db, l)
		categoryRepo category.Repository = store.NewCategoryRepository(db, l)
		rateLimiter  *middleware.RateLimiter
	)
	if rdb != nil {
		ttl := time.Duration(cfg.Redis.CacheTTL) * time.Second
		userRepo = cached.NewUserRepository(userRepo, cache.NewUserCache(rdb.Client, ttl, l), l)
		categoryRepo = cached.NewCategoryRepository(categoryRepo, cache.NewCategoryCache(rdb.Client, ttl, l), l)

		rateLimiter = middleware.NewRateLimiter(
			rdb.Client,
			middleware.RateLimiterConfig{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				BurstCapacity:     cfg.RateLimit.BurstCapacity,
				Enabled:           cfg.RateLimit.Enabled,
			},
			l,
		)
	}

	var registry *prometheus.Registry
	if cfg.HTTP.MetricsEnabled {
		registry = prometheus.NewRegistry()
		sqlDB, err := db.DB()
		if err != nil {
			_ = infrastructure.CloseDatabase(db)
			if rdb != nil {
				_ = rdb.Close()
			}
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewDBStatsCollector(sqlDB, cfg.DB.Driver),
		)
	}

	hasher := security.NewPasswordHasher(cfg.App.BcryptCost)
	userService := user.New(userRepo, hasher, l)
	categoryService := category.New(categoryRepo, l)

	return &Container{
		Config:          cfg,
		Logger:          l,
		DB:              db,
		RedisClient:     rdb,
		Registry:        registry,
		Hasher:          hasher,
		UserService:     userService,
		CategoryService: categoryService,
		RateLimiter:     rateLimiter,
		UserHandler:     ginhandler.NewUserHandler(userService, l),
		CategoryHandler: ginhandler.NewCategoryHandler(categoryService, l),
		Catalog:         grpcadapter.NewCatalogService(userService, categoryService, l),
	}, nil
}

// Migrate creates or updates the database schema.
func (c *Container) Migrate(ctx context.Context) error {
	if err := store.Migrate(ctx, c.DB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	c.Logger.Info("database schema up to date")
	return nil
}

// Seed loads the demo data into an empty database.
func (c *Container) Seed(ctx context.Context) error {
	if err := store.Seed(ctx, c.DB, c.Hasher, c.Logger); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	return nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}
