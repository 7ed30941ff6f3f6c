package container

import (
	"context"
	"fmt"
	"time"

	"event-manager/internal/config"
	eventHandler "event-manager/internal/domains/event/handler"
	eventRepo "event-manager/internal/domains/event/repository"
	eventService "event-manager/internal/domains/event/service"
	mediaHandler "event-manager/internal/domains/media/handler"
	mediaService "event-manager/internal/domains/media/service"
	"event-manager/internal/domains/wallet"
	walletHandler "event-manager/internal/domains/wallet/handler"
	infraCache "event-manager/internal/infrastructure/cache"
	"event-manager/internal/infrastructure/database"
	"event-manager/internal/infrastructure/database/migrations"
	"event-manager/internal/infrastructure/queue"
	"event-manager/internal/infrastructure/storage"
	"event-manager/internal/shared/metrics"
	"event-manager/internal/web"
	"event-manager/pkg/cache"
	"event-manager/pkg/clock"
	"event-manager/pkg/jwt"

	"github.com/rs/zerolog/log"
)

// Container holds every dependency of the application.
// Build order: config → infrastructure → repositories → services → handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *infraCache.RedisCache // nil when Redis is unreachable
	Cache      cache.Cache
	Storage    *storage.MinIOStorage // nil when uploads are disabled
	Tasks      *queue.TaskClient     // nil when background jobs are disabled
	JWTManager *jwt.Manager
	Clock      clock.Clock

	// Repositories
	EventRepo eventRepo.RepositoryInterface

	// Services
	EventService  eventService.ServiceInterface
	ImageService  mediaService.ServiceInterface
	WalletService wallet.Service

	// Handlers
	EventHandler  *eventHandler.Handler
	UploadHandler *mediaHandler.Handler
	WalletHandler *walletHandler.WalletHandler
	Pages         *web.Pages
}

// NewContainer builds the dependency graph. Postgres is required; Redis,
// MinIO and the job queue degrade gracefully.
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing DI container")

	c := &Container{Clock: clock.NewSystem()}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("env", cfg.App.Environment).Msg("Config loaded")

	metrics.Register()

	if err := c.initDatabase(); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initCache()
	c.initStorage()
	c.initTasks()

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TokenExpiry)*time.Hour)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	if err := migrations.Apply(ctx, db.Pool); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.Info().Msg("Database connected and migrated")
	return nil
}

// initCache falls back to a no-op cache when Redis is unreachable
func (c *Container) initCache() {
	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical), caching disabled")
		_ = redisCache.Close()
		c.Cache = cache.NewNoop()
		return
	}

	c.Redis = redisCache
	c.Cache = redisCache
	log.Info().Str("addr", c.Config.Redis.Host).Msg("Redis connected")
}

func (c *Container) initStorage() {
	if !c.Config.MinIO.Enabled {
		log.Info().Msg("MinIO disabled, image uploads off")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
	if err != nil {
		log.Warn().Err(err).Msg("MinIO unavailable (non-critical), image uploads off")
		return
	}
	c.Storage = store
	log.Info().Str("bucket", c.Config.MinIO.Bucket).Msg("MinIO connected")
}

// initTasks needs Redis; without it image cleanup relies on the sweep alone
func (c *Container) initTasks() {
	if !c.Config.Jobs.Enabled || c.Redis == nil {
		log.Info().Msg("Background jobs disabled")
		return
	}
	c.Tasks = queue.NewTaskClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
}

func (c *Container) initRepositories() {
	c.EventRepo = eventRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
}

func (c *Container) initServices() {
	var jobs eventService.ImageJobs
	if c.Tasks != nil {
		jobs = c.Tasks
	}
	c.EventService = eventService.NewEventService(c.EventRepo, c.Clock, jobs)

	var store mediaService.ImageStore
	if c.Storage != nil {
		store = c.Storage
	}
	c.ImageService = mediaService.NewImageService(store, storage.NewImageProcessor())

	c.WalletService = wallet.NewService(c.Config.Wallet.SignInMessage, c.JWTManager, c.Clock)
}

func (c *Container) initHandlers() {
	c.EventHandler = eventHandler.NewHandler(c.EventService)
	c.UploadHandler = mediaHandler.NewHandler(c.ImageService, storage.DefaultMaxImageSize)
	c.WalletHandler = walletHandler.NewWalletHandler(c.WalletService)
	c.Pages = web.NewPages(c.EventService, web.NewClientConfig(c.Config, c.ImageService.Enabled()))
}

// Cleanup releases connections; safe on a partially built container
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.Tasks != nil {
		if err := c.Tasks.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close task client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("Container cleanup completed")
}
