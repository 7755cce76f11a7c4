package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"product-catalog-backend/internal/config"
	productHandler "product-catalog-backend/internal/domains/product/handler"
	productRepo "product-catalog-backend/internal/domains/product/repository"
	productService "product-catalog-backend/internal/domains/product/service"
	infraCache "product-catalog-backend/internal/infrastructure/cache"
	"product-catalog-backend/internal/infrastructure/database"
	"product-catalog-backend/internal/infrastructure/storage"
	"product-catalog-backend/pkg/cache"
)

// Container chứa tất cả dependencies của application
// Lifecycle: mọi field là singleton trong app lifetime
type Container struct {
	// Infrastructure layer
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	Storage     *storage.MinIOStorage
	AsynqClient *asynq.Client

	// Repository layer
	ProductRepo productRepo.ProductRepository

	// Service layer
	ProductService productService.ProductService

	// Handler layer
	ProductHandler *productHandler.ProductHandler
}

// NewContainer tạo và initialize toàn bộ dependency graph
// Thứ tự: Config → Infrastructure → Repositories → Services → Handlers
func NewContainer() (*Container, error) {
	log.Println("[Container] Initializing...")

	c := &Container{}

	// Step 1: Configuration - không phụ thuộc gì, load đầu tiên
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[Container] Config loaded (environment: %s)", cfg.App.Environment)

	// Step 2: Database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("[Container] Database connected")

	// Step 3: Redis cache
	// Redis failure không critical - log warning và continue
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Printf("[Container] Redis connection failed (non-critical): %v", err)
		}
	}
	c.Cache = redisCache

	// Step 4: MinIO image store
	// Image store critical cho create/delete - fail thì không start
	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init minio storage: %w", err)
	}
	c.Storage = minioStorage
	log.Println("[Container] MinIO storage ready")

	// Step 5: Asynq client cho cleanup retry jobs
	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Step 6: Repositories
	c.ProductRepo = productRepo.NewPostgresRepository(c.DB.Pool)

	// Step 7: Services
	c.ProductService = productService.NewProductService(
		c.ProductRepo,
		c.Storage,
		c.Cache,
		c.AsynqClient,
	)

	// Step 8: Handlers
	c.ProductHandler = productHandler.NewProductHandler(c.ProductService, cfg.Upload)

	log.Println("[Container] Initialized successfully")
	return c, nil
}

// Cleanup dọn dẹp resources khi shutdown
// Gọi trong graceful shutdown của server
func (c *Container) Cleanup() {
	log.Println("[Container] Cleaning up resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("[Container] Failed to close asynq client: %v", err)
		}
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("[Container] Failed to close Redis: %v", err)
			}
		}
	}

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
	}

	log.Println("[Container] Cleanup completed")
}
