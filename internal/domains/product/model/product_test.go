package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-catalog-backend/internal/shared/utils"
)

func TestNewProduct(t *testing.T) {
	cover := ProductImage{URL: "http://store/p/cover.jpg", ExternalID: "products/cover.jpg"}

	product := NewProduct("Poster", "Wall  Art!", "A nice poster", cover, nil)

	require.NotNil(t, product)
	assert.True(t, utils.IsValidUUID(product.ID))
	assert.Equal(t, "Poster", product.Name)
	assert.Equal(t, "wall-art", product.Type)
	assert.Equal(t, "A nice poster", product.Description)
	assert.Equal(t, cover, product.CoverImage)
	assert.NotNil(t, product.AdditionalImages)
	assert.Empty(t, product.AdditionalImages)
	assert.False(t, product.CreatedAt.IsZero())
	assert.Equal(t, product.CreatedAt, product.UpdatedAt)
}

func TestNewProduct_UniqueIDs(t *testing.T) {
	cover := ProductImage{URL: "u", ExternalID: "e"}
	p1 := NewProduct("a", "t", "d", cover, nil)
	p2 := NewProduct("a", "t", "d", cover, nil)

	assert.NotEqual(t, p1.ID, p2.ID)
}

func TestProduct_ExternalIDs(t *testing.T) {
	product := &Product{
		CoverImage: ProductImage{URL: "u0", ExternalID: "ext-cover"},
		AdditionalImages: []ProductImage{
			{URL: "u1", ExternalID: "ext-1"},
			{URL: "u2", ExternalID: "ext-2"},
		},
	}

	assert.Equal(t, []string{"ext-cover", "ext-1", "ext-2"}, product.ExternalIDs())
}

func TestProduct_ExternalIDs_SkipsEmpty(t *testing.T) {
	product := &Product{
		CoverImage: ProductImage{URL: "u0", ExternalID: "ext-cover"},
		AdditionalImages: []ProductImage{
			{URL: "u1", ExternalID: ""},
		},
	}

	assert.Equal(t, []string{"ext-cover"}, product.ExternalIDs())
}

func TestCreateProductRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateProductRequest
		wantErr bool
	}{
		{
			name:    "all fields present",
			req:     CreateProductRequest{Name: "Poster", Type: "wall-art", Description: "desc"},
			wantErr: false,
		},
		{
			name:    "missing name",
			req:     CreateProductRequest{Type: "wall-art", Description: "desc"},
			wantErr: true,
		},
		{
			name:    "missing type",
			req:     CreateProductRequest{Name: "Poster", Description: "desc"},
			wantErr: true,
		},
		{
			name:    "missing description",
			req:     CreateProductRequest{Name: "Poster", Type: "wall-art"},
			wantErr: true,
		},
		{
			name:    "all missing",
			req:     CreateProductRequest{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
