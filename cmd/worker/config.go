package main

import (
	"log"

	"product-catalog-backend/internal/shared/utils"
)

// workerConfig holds configuration for the worker process
type workerConfig struct {
	RedisAddr     string
	RedisPassword string
	Concurrency   int
}

// loadWorkerConfig loads configuration from environment variables
func loadWorkerConfig() *workerConfig {
	cfg := &workerConfig{
		RedisAddr:     utils.GetEnvVariable("REDIS_HOST", "localhost:6379"),
		RedisPassword: utils.GetEnvVariable("REDIS_PASSWORD", ""),
		Concurrency:   10,
	}

	log.Printf("[Config] Redis: %s, Concurrency: %d", cfg.RedisAddr, cfg.Concurrency)

	return cfg
}
