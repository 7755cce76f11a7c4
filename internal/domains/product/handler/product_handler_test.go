package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"product-catalog-backend/internal/config"
	"product-catalog-backend/internal/domains/product/model"
)

// --- Mock service ---

type mockProductService struct {
	mock.Mock
}

func (m *mockProductService) CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockProductService) ListProducts(ctx context.Context) ([]*model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Product), args.Error(1)
}

func (m *mockProductService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockProductService) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Helpers ---

const testProductID = "550e8400-e29b-41d4-a716-446655440000"

func newTestRouter(svc *mockProductService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewProductHandler(svc, config.UploadConfig{
		MaxFileSizeMB:       5,
		MaxAdditionalImages: 5,
	})

	router := gin.New()
	v1 := router.Group("/api/v1")
	products := v1.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.GET("/:id", h.GetProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}

	return router
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

type formInput struct {
	fields           map[string]string
	coverImage       bool
	additionalImages int
}

func buildMultipartBody(t *testing.T, input formInput) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range input.fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if input.coverImage {
		part, err := writer.CreateFormFile(fieldCoverImage, "cover.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("cover-bytes"))
		require.NoError(t, err)
	}

	for i := 0; i < input.additionalImages; i++ {
		part, err := writer.CreateFormFile(fieldAdditionalImages, "extra.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte{'e', 'x', 't', byte(i)})
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"name":        "Poster",
		"type":        "Wall Art",
		"description": "A nice poster",
	}
}

// --- GET /products ---

func TestListProducts_OK(t *testing.T) {
	svc := new(mockProductService)
	router := newTestRouter(svc)

	svc.On("ListProducts", mock.Anything).Return([]*model.Product{
		{ID: testProductID, Name: "Poster", Type: "wall-art"},
	}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusOK, env.StatusCode)
	assert.Equal(t, "Products fetched successfully", env.Message)

	var products []model.Product
	require.NoError(t, json.Unmarshal(env.Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "wall-art", products[0].Type)
}

func TestListProducts_EmptyIsNotFound(t *testing.T) {
	svc := new(mockProductService)
	router := newTestRouter(svc)

	svc.On("ListProducts", mock.Anything).Return(nil, model.ErrNoProducts)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "No products found", env.Message)
}

// --- GET /products/:id ---

func TestGetProduct_OK(t *testing.T) {
	svc := new(mockProductService)
	router := newTestRouter(svc)

	svc.On("GetProduct", mock.Anything, testProductID).
		Return(&model.Product{ID: testProductID, Name: "Poster"}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+testProductID, nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
}

func TestGetProduct_InvalidID(t *testing.T) {
	svc := new(mockProductService)
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/not-a-uuid", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything)
}

// --- POST /products ---

func TestCreateProduct_Created(t *testing.T) {
	svc := new(mockProductService)
	router := newTestRouter(svc)

	svc.On("CreateProduct", mock.Anything, mock.MatchedBy(func(req model.CreateProductRequest) bool {
		return req.Name == "Poster" &&
			req.CoverImage != nil &&
			string(req.CoverImage.Data) == "cover-bytes" &&
			len(req.AdditionalImages) == 2
	})).Return(&model.Product{ID: testProductID, Name: "Poster", Type: "wall-art"}, nil)

	body, contentType := buildMultipartBody(t, formInput{
		fields:           validFields(),
		coverImage:       true,
		additionalImages: 2,
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Product created successfully", env.Message)
	svc.AssertExpectations(t)
}

func TestCreateProduct_MissingTextField(t *testing.T) {
	svc := new(mockProductService)
	router := newTestRouter(svc)

	fields := validFields()
	delete(fields, "description")

	body, contentType := buildMultipartBody(t, formInput{
		fields:     fields,
		coverImage: true,
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestCreateProduct_MissingCoverImage(t *testing.T) {
	svc := new(mockProductService)
	router := newTestRouter(svc)

	body, contentType := buildMultipartBody(t, formInput{
		fields: validFields(),
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Cover image is required", env.Message)
	svc.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestCreateProduct_TooManyAdditionalImages(t *testing.T) {
	svc := new(mockProductService)
	router := newTestRouter(svc)

	body, contentType := buildMultipartBody(t, formInput{
		fields:           validFields(),
		coverImage:       true,
		additionalImages: 6,
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestCreateProduct_ServiceFailure(t *testing.T) {
	svc := new(mockProductService)
	router := newTestRouter(svc)

	svc.On("CreateProduct", mock.Anything, mock.AnythingOfType("model.CreateProductRequest")).
		Return(nil, model.ErrCreateFailed)

	body, contentType := buildMultipartBody(t, formInput{
		fields:     validFields(),
		coverImage: true,
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Product creation failed", env.Message)
}

// --- DELETE /products/:id ---

func TestDeleteProduct_OK(t *testing.T) {
	svc := new(mockProductService)
	router := newTestRouter(svc)

	svc.On("DeleteProduct", mock.Anything, testProductID).Return(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+testProductID, nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Product deleted successfully", env.Message)
	// Payload là null theo contract
	assert.Equal(t, "null", string(env.Data))
}

func TestDeleteProduct_NotFound(t *testing.T) {
	svc := new(mockProductService)
	router := newTestRouter(svc)

	svc.On("DeleteProduct", mock.Anything, testProductID).Return(model.ErrProductNotFound)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+testProductID, nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decodeEnvelope(t, rec).Message)
}

func TestDeleteProduct_InvalidID(t *testing.T) {
	svc := new(mockProductService)
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/123", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "DeleteProduct", mock.Anything, mock.Anything)
}
