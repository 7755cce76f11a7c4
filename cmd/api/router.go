package main

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"product-catalog-backend/internal/shared/middleware"
	"product-catalog-backend/internal/shared/response"
	"product-catalog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = c.Config.Upload.MultipartMemoryLimit

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.CORSOrigin),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupProductRoutes(v1, c)
	}

	// Production serve luôn frontend build từ cùng binary
	if c.Config.App.Environment == "production" {
		setupStaticRoutes(router, c.Config.App.StaticDir)
	}

	return router
}

func setupProductRoutes(v1 *gin.RouterGroup, c *container.Container) {
	products := v1.Group("/products")
	{
		products.GET("", c.ProductHandler.ListProducts)
		products.POST("", c.ProductHandler.CreateProduct)
		products.GET("/:id", c.ProductHandler.GetProduct)
		products.DELETE("/:id", c.ProductHandler.DeleteProduct)
	}
}

// setupStaticRoutes serve SPA build: assets theo path, còn lại fallback
// về index.html để client-side router xử lý
func setupStaticRoutes(router *gin.Engine, staticDir string) {
	if _, err := os.Stat(staticDir); err != nil {
		return
	}

	router.Static("/assets", filepath.Join(staticDir, "assets"))
	router.NoRoute(func(c *gin.Context) {
		c.File(filepath.Join(staticDir, "index.html"))
	})
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		health := gin.H{
			"status":      "ok",
			"environment": c.Config.App.Environment,
			"version":     c.Config.App.Version,
		}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			health["status"] = "degraded"
			health["database"] = err.Error()
		} else {
			health["database"] = "ok"
		}

		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			health["redis"] = err.Error()
		} else {
			health["redis"] = "ok"
		}

		status := http.StatusOK
		if health["status"] != "ok" {
			status = http.StatusServiceUnavailable
		}

		response.Success(ctx, status, health, "Health check")
	}
}
