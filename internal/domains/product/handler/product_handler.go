package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"product-catalog-backend/internal/config"
	"product-catalog-backend/internal/domains/product/model"
	"product-catalog-backend/internal/domains/product/service"
	"product-catalog-backend/internal/shared/response"
	"product-catalog-backend/internal/shared/utils"
)

// Multipart field names - contract với frontend form
const (
	fieldCoverImage       = "coverImage"
	fieldAdditionalImages = "additionalImages"
)

// ProductHandler - HTTP layer, delegate sang ProductService
type ProductHandler struct {
	service service.ProductService
	upload  config.UploadConfig
}

func NewProductHandler(service service.ProductService, upload config.UploadConfig) *ProductHandler {
	return &ProductHandler{
		service: service,
		upload:  upload,
	}
}

// ListProducts - GET /api/v1/products
// Trả về products newest-first; empty list là 404 theo observed contract
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if model.HandleProductError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, products, "Products fetched successfully")
}

// GetProduct - GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidUUID(id) {
		response.BadRequest(c, "Invalid product id")
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), id)
	if model.HandleProductError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, product, "Product fetched successfully")
}

// CreateProduct - POST /api/v1/products
// Multipart body: name, type, description (text),
// coverImage (file, exactly 1), additionalImages (file, 0-5)
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		log.Warn().Err(err).Msg("Invalid multipart form")
		response.BadRequest(c, "Invalid multipart form data")
		return
	}

	req := model.CreateProductRequest{
		Name:        c.PostForm("name"),
		Type:        c.PostForm("type"),
		Description: c.PostForm("description"),
	}

	// Text validation trước khi đọc file content - fail fast
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	coverFiles := form.File[fieldCoverImage]
	if len(coverFiles) == 0 {
		response.BadRequest(c, "Cover image is required")
		return
	}

	additionalFiles := form.File[fieldAdditionalImages]
	if len(additionalFiles) > h.upload.MaxAdditionalImages {
		response.BadRequest(c, fmt.Sprintf(
			"A maximum of %d additional images is allowed", h.upload.MaxAdditionalImages))
		return
	}

	cover, err := h.readImageFile(coverFiles[0])
	if err != nil {
		model.HandleProductError(c, err)
		return
	}
	req.CoverImage = cover

	for _, fh := range additionalFiles {
		file, err := h.readImageFile(fh)
		if err != nil {
			model.HandleProductError(c, err)
			return
		}
		req.AdditionalImages = append(req.AdditionalImages, *file)
	}

	product, err := h.service.CreateProduct(c.Request.Context(), req)
	if model.HandleProductError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, product, "Product created successfully")
}

// DeleteProduct - DELETE /api/v1/products/:id
// Success payload là null theo contract
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidUUID(id) {
		response.BadRequest(c, "Invalid product id")
		return
	}

	err := h.service.DeleteProduct(c.Request.Context(), id)
	if model.HandleProductError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

// readImageFile đọc multipart file vào memory và check size limit
func (h *ProductHandler) readImageFile(fh *multipart.FileHeader) (*model.ImageFile, error) {
	maxBytes := h.upload.MaxFileSizeMB << 20
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, model.ErrImageTooLarge
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file %s: %w", fh.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read uploaded file %s: %w", fh.Filename, err)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &model.ImageFile{
		FileName:    fh.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}
