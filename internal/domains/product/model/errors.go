package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"product-catalog-backend/internal/shared/response"
)

var (
	ErrNoProducts         = errors.New("no products found")
	ErrProductNotFound    = errors.New("product not found")
	ErrCoverImageRequired = errors.New("cover image is required")
	ErrTooManyImages      = errors.New("a maximum of 5 additional images is allowed")
	ErrImageTooLarge      = errors.New("image exceeds maximum allowed size")
	ErrCoverUploadFailed  = errors.New("cover image upload failed")
	ErrCreateFailed       = errors.New("product creation failed")
	ErrDeleteFailed       = errors.New("failed to delete product")
	ErrDatabaseQuery      = errors.New("database query error")
)

var productErrorMap = []struct {
	Err     error
	Status  int
	Message string
}{
	{ErrNoProducts, http.StatusNotFound, "No products found"},
	{ErrProductNotFound, http.StatusNotFound, "Product not found"},
	{ErrCoverImageRequired, http.StatusBadRequest, "Cover image is required"},
	{ErrTooManyImages, http.StatusBadRequest, "A maximum of 5 additional images is allowed"},
	{ErrImageTooLarge, http.StatusBadRequest, "One or more images exceed the maximum allowed size"},
	{ErrCoverUploadFailed, http.StatusInternalServerError, "Cover image upload failed"},
	{ErrCreateFailed, http.StatusInternalServerError, "Product creation failed"},
	{ErrDeleteFailed, http.StatusInternalServerError, "Failed to delete product"},
}

// HandleProductError map business error sang HTTP response
// Trả về true nếu err đã được handle (caller return ngay)
func HandleProductError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	// Validation errors từ request binding → 400 với message cụ thể
	if IsValidationError(err) {
		response.BadRequest(c, err.Error())
		return true
	}

	for _, entry := range productErrorMap {
		if errors.Is(err, entry.Err) {
			response.Error(c, entry.Status, entry.Message)
			return true
		}
	}

	// Lỗi không xác định
	log.Error().Err(err).Msg("Unhandled product error")
	response.InternalServerError(c, "Internal server error")
	return true
}
