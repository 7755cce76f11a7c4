package main

import (
	"github.com/hibiken/asynq"

	productJob "product-catalog-backend/internal/domains/product/job"
	"product-catalog-backend/internal/shared"
	"product-catalog-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	cleanupImages *productJob.CleanupImagesHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		cleanupImages: productJob.NewCleanupImagesHandler(c.Storage),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeCleanupProductImages, h.cleanupImages.ProcessTask)
}
