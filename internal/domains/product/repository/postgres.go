package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"product-catalog-backend/internal/domains/product/model"
	"product-catalog-backend/internal/shared/utils"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository tạo product repository trên pgxpool
func NewPostgresRepository(pool *pgxpool.Pool) ProductRepository {
	return &postgresRepository{pool: pool}
}

// imageRecord là JSON shape của một ảnh trong cột additional_images
type imageRecord struct {
	URL        string `json:"url"`
	ExternalID string `json:"external_id"`
}

func (r *postgresRepository) Create(ctx context.Context, product *model.Product) error {
	// Slug normalization áp dụng trên mọi write có type
	product.Type = utils.NormalizeTypeSlug(product.Type)

	additionalJSON, err := marshalImages(product.AdditionalImages)
	if err != nil {
		return fmt.Errorf("marshal additional images: %w", err)
	}

	query := `
		INSERT INTO products (
			id, name, type, description,
			cover_url, cover_external_id, additional_images,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Type,
		product.Description,
		product.CoverImage.URL,
		product.CoverImage.ExternalID,
		additionalJSON,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert product: %v", model.ErrDatabaseQuery, err)
	}

	return nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]*model.Product, error) {
	query := `
		SELECT id, name, type, description,
		       cover_url, cover_external_id, additional_images,
		       created_at, updated_at
		FROM products
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query products: %v", model.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate products: %v", model.ErrDatabaseQuery, err)
	}

	// Empty result là signal riêng, không phải error ngầm
	if len(products) == 0 {
		return nil, model.ErrNoProducts
	}

	return products, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	query := `
		SELECT id, name, type, description,
		       cover_url, cover_external_id, additional_images,
		       created_at, updated_at
		FROM products
		WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, err
	}

	return product, nil
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: delete product: %v", model.ErrDatabaseQuery, err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// scanProduct đọc một row thành Product entity
// pgx.Row và pgx.Rows đều satisfy interface này
func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		product        model.Product
		additionalJSON []byte
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Type,
		&product.Description,
		&product.CoverImage.URL,
		&product.CoverImage.ExternalID,
		&additionalJSON,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("%w: scan product: %v", model.ErrDatabaseQuery, err)
	}

	images, err := unmarshalImages(additionalJSON)
	if err != nil {
		return nil, fmt.Errorf("unmarshal additional images: %w", err)
	}
	product.AdditionalImages = images

	return &product, nil
}

func marshalImages(images []model.ProductImage) ([]byte, error) {
	records := make([]imageRecord, 0, len(images))
	for _, img := range images {
		records = append(records, imageRecord{URL: img.URL, ExternalID: img.ExternalID})
	}
	return json.Marshal(records)
}

func unmarshalImages(data []byte) ([]model.ProductImage, error) {
	if len(data) == 0 {
		return []model.ProductImage{}, nil
	}

	var records []imageRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	images := make([]model.ProductImage, 0, len(records))
	for _, rec := range records {
		images = append(images, model.ProductImage{URL: rec.URL, ExternalID: rec.ExternalID})
	}
	return images, nil
}
