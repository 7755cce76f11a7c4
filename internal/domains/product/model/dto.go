package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ImageFile là nội dung một file ảnh từ multipart request
type ImageFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// CreateProductRequest là input cho create operation
// Text fields required; CoverImage required; AdditionalImages 0-5 (handler enforce)
type CreateProductRequest struct {
	Name             string
	Type             string
	Description      string
	CoverImage       *ImageFile
	AdditionalImages []ImageFile
}

// Validate kiểm tra required text fields
// Fail fast - không upload gì khi validation fail
func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("product name is required")),
		validation.Field(&r.Type, validation.Required.Error("product type is required")),
		validation.Field(&r.Description, validation.Required.Error("product description is required")),
	)
}

// IsValidationError check error có phải từ request validation không
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(validation.Errors)
	return ok
}
