package repository

import (
	"context"

	"product-catalog-backend/internal/domains/product/model"
)

// ProductRepository là contract cho product persistence
type ProductRepository interface {
	// Create persist product record, type đã được slug-normalize trước khi ghi
	Create(ctx context.Context, product *model.Product) error

	// FindAll trả về products sorted by created_at DESC
	// Empty table trả về model.ErrNoProducts (empty khác error ở repo layer,
	// HTTP boundary map thành 404 theo observed behavior)
	FindAll(ctx context.Context) ([]*model.Product, error)

	// FindByID trả về model.ErrProductNotFound nếu không tồn tại
	FindByID(ctx context.Context, id string) (*model.Product, error)

	// DeleteByID trả về model.ErrProductNotFound nếu không có row nào bị xóa
	DeleteByID(ctx context.Context, id string) error
}
