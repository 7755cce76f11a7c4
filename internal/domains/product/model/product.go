package model

import (
	"time"

	"github.com/google/uuid"

	"product-catalog-backend/internal/shared/utils"
)

// MaxAdditionalImages là giới hạn caller-facing cho additionalImages
// Repository không enforce limit này - handler enforce
const MaxAdditionalImages = 5

// ProductImage là một ảnh đã host trên object store
// ExternalID dùng để address ảnh khi xóa (object key)
type ProductImage struct {
	URL        string `json:"url"`
	ExternalID string `json:"externalId"`
}

// Product là entity duy nhất được persist
// Product không bao giờ bị mutate sau khi tạo (không có update operation)
type Product struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Type             string         `json:"type"` // slug-normalized
	Description      string         `json:"description"`
	CoverImage       ProductImage   `json:"coverImage"`
	AdditionalImages []ProductImage `json:"additionalImages"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// NewProduct tạo product entity với ID mới và type đã normalize
// Caller đảm bảo cover đã upload thành công trước khi gọi
func NewProduct(name, productType, description string, cover ProductImage, additional []ProductImage) *Product {
	now := time.Now().UTC()

	if additional == nil {
		additional = []ProductImage{}
	}

	return &Product{
		ID:               uuid.NewString(),
		Name:             name,
		Type:             utils.NormalizeTypeSlug(productType),
		Description:      description,
		CoverImage:       cover,
		AdditionalImages: additional,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// ExternalIDs trả về toàn bộ external ids của product (cover + additional)
// Dùng làm deletion set khi xóa product
func (p *Product) ExternalIDs() []string {
	ids := make([]string, 0, 1+len(p.AdditionalImages))
	if p.CoverImage.ExternalID != "" {
		ids = append(ids, p.CoverImage.ExternalID)
	}
	for _, img := range p.AdditionalImages {
		if img.ExternalID != "" {
			ids = append(ids, img.ExternalID)
		}
	}
	return ids
}
