package service

import (
	"context"

	"github.com/hibiken/asynq"

	"product-catalog-backend/internal/domains/product/model"
	"product-catalog-backend/internal/infrastructure/storage"
)

// ImageStore là contract với external image store (MinIO)
// Upload fail là fatal cho cover, best-effort cho additional images
// Delete fail không bao giờ fatal cho operation đang chạy
type ImageStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (storage.UploadResult, error)
	Delete(ctx context.Context, externalID string) error
}

// CleanupEnqueuer enqueue retry tasks cho image cleanup thất bại
// *asynq.Client satisfy interface này
type CleanupEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ProductService là lifecycle coordinator: giữ product record và ảnh
// external consistent qua create và delete
type ProductService interface {
	CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error)
	ListProducts(ctx context.Context) ([]*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}
