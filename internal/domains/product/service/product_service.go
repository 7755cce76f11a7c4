package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"product-catalog-backend/internal/domains/product/model"
	"product-catalog-backend/internal/domains/product/repository"
	"product-catalog-backend/internal/infrastructure/storage"
	"product-catalog-backend/internal/shared"
	"product-catalog-backend/pkg/cache"
)

const (
	listCacheKey   = "product:list"
	listCacheTTL   = 1 * time.Minute
	detailCacheTTL = 10 * time.Minute
)

func detailCacheKey(id string) string {
	return "product:detail:" + id
}

type productService struct {
	repo     repository.ProductRepository
	images   ImageStore
	cache    cache.Cache
	enqueuer CleanupEnqueuer
}

// NewProductService tạo lifecycle coordinator
// enqueuer có thể nil - cleanup retry bị disable, failures chỉ được log
func NewProductService(
	repo repository.ProductRepository,
	images ImageStore,
	cache cache.Cache,
	enqueuer CleanupEnqueuer,
) ProductService {
	return &productService{
		repo:     repo,
		images:   images,
		cache:    cache,
		enqueuer: enqueuer,
	}
}

// CreateProduct orchestrate create operation:
//  1. Validate text fields - fail fast, chưa upload gì
//  2. Validate cover file present - fail fast
//  3. Upload cover (fatal on failure, chưa có gì để rollback)
//  4. Upload additional images (best-effort, skip từng ảnh fail)
//  5. Persist record
//  6. Nếu persist fail: xóa mọi external id đã upload trong operation này
func (s *productService) CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.CoverImage == nil || len(req.CoverImage.Data) == 0 {
		return nil, model.ErrCoverImageRequired
	}

	// Cover upload phải xong trước mọi additional upload và trước DB write:
	// operation không thể tiếp tục nếu thiếu cover
	coverResult, err := s.images.Upload(ctx, req.CoverImage.Data, req.CoverImage.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCoverUploadFailed, err)
	}

	cover := model.ProductImage{URL: coverResult.URL, ExternalID: coverResult.ExternalID}

	// Rollback set: mọi external id upload trong operation này
	rollbackSet := []string{cover.ExternalID}

	additional := s.uploadAdditionalImages(ctx, req.AdditionalImages)
	for _, img := range additional {
		rollbackSet = append(rollbackSet, img.ExternalID)
	}

	product := model.NewProduct(req.Name, req.Type, req.Description, cover, additional)

	if err := s.repo.Create(ctx, product); err != nil {
		log.Error().
			Err(err).
			Str("product_id", product.ID).
			Int("uploaded_images", len(rollbackSet)).
			Msg("Persistence failed, rolling back uploaded images")

		// Compensating action: orphaned images trong external storage
		// là resource leak có chi phí thật
		s.cleanupImages(ctx, product.ID, rollbackSet)

		return nil, fmt.Errorf("%w: %v", model.ErrCreateFailed, err)
	}

	s.invalidateCache(ctx, listCacheKey)

	log.Info().
		Str("product_id", product.ID).
		Str("type", product.Type).
		Int("additional_images", len(product.AdditionalImages)).
		Msg("Product created")

	return product, nil
}

// ListProducts trả về products newest-first
// Empty repository surface model.ErrNoProducts
func (s *productService) ListProducts(ctx context.Context) ([]*model.Product, error) {
	var cached []*model.Product
	if found, err := s.cache.Get(ctx, listCacheKey, &cached); found {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("Product list cache read failed")
	}

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, listCacheKey, products, listCacheTTL); err != nil {
		log.Warn().Err(err).Msg("Product list cache write failed")
	}

	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	cacheKey := detailCacheKey(id)

	var cached model.Product
	if found, err := s.cache.Get(ctx, cacheKey, &cached); found {
		return &cached, nil
	} else if err != nil {
		log.Warn().Err(err).Str("product_id", id).Msg("Product detail cache read failed")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, product, detailCacheTTL); err != nil {
		log.Warn().Err(err).Str("product_id", id).Msg("Product detail cache write failed")
	}

	return product, nil
}

// DeleteProduct orchestrate delete operation:
//  1. Lookup record - absent là NotFound, không có side effect
//  2. Collect deletion set (cover + additional external ids)
//  3. Best-effort independent image deletions
//  4. Delete record
func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// Cleanup failures không escalate: dominant concern là freeing
	// image resources, đã được attempt + queued for retry
	s.cleanupImages(ctx, product.ID, product.ExternalIDs())

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		// Record deletion failure vẫn được report dù image cleanup
		// đã chạy một phần
		return fmt.Errorf("%w: %v", model.ErrDeleteFailed, err)
	}

	s.invalidateCache(ctx, listCacheKey, detailCacheKey(id))

	log.Info().
		Str("product_id", id).
		Msg("Product deleted")

	return nil
}

// uploadAdditionalImages upload các ảnh phụ concurrent và đợi tất cả settle
// Từng ảnh độc lập: fail ảnh nào skip ảnh đó, không abort cả batch
// Thứ tự successes giữ nguyên input order
func (s *productService) uploadAdditionalImages(ctx context.Context, files []model.ImageFile) []model.ProductImage {
	if len(files) == 0 {
		return nil
	}

	results := make([]*storage.UploadResult, len(files))

	var wg sync.WaitGroup
	for i := range files {
		wg.Add(1)
		go func(idx int, file model.ImageFile) {
			defer wg.Done()

			result, err := s.images.Upload(ctx, file.Data, file.ContentType)
			if err != nil {
				// Best-effort policy: additional image fail thì bỏ qua
				log.Warn().
					Err(err).
					Str("file_name", file.FileName).
					Msg("Additional image upload failed, skipping")
				return
			}
			results[idx] = &result
		}(i, files[i])
	}
	wg.Wait()

	images := make([]model.ProductImage, 0, len(files))
	for _, result := range results {
		if result != nil {
			images = append(images, model.ProductImage{
				URL:        result.URL,
				ExternalID: result.ExternalID,
			})
		}
	}

	return images
}

// cleanupImages xóa một set external ids độc lập với nhau
// Một deletion fail không chặn các deletion khác; failures được
// enqueue cho worker retry, không bao giờ escalate lên caller
func (s *productService) cleanupImages(ctx context.Context, productID string, externalIDs []string) {
	if len(externalIDs) == 0 {
		return
	}

	failed := make([]string, len(externalIDs))

	var wg sync.WaitGroup
	for i, externalID := range externalIDs {
		wg.Add(1)
		go func(idx int, id string) {
			defer wg.Done()

			if err := s.images.Delete(ctx, id); err != nil {
				log.Error().
					Err(err).
					Str("product_id", productID).
					Str("external_id", id).
					Msg("Image cleanup failed, queueing for retry")
				failed[idx] = id
			}
		}(i, externalID)
	}
	wg.Wait()

	var retryIDs []string
	for _, id := range failed {
		if id != "" {
			retryIDs = append(retryIDs, id)
		}
	}

	if len(retryIDs) > 0 {
		s.enqueueCleanupRetry(productID, retryIDs)
	}
}

// enqueueCleanupRetry đẩy failed deletions sang worker
// Enqueue fail cũng chỉ log - cleanup là best-effort ở mọi tầng
func (s *productService) enqueueCleanupRetry(productID string, externalIDs []string) {
	if s.enqueuer == nil {
		return
	}

	payload, err := json.Marshal(shared.CleanupProductImagesPayload{
		ProductID:   productID,
		ExternalIDs: externalIDs,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal cleanup payload")
		return
	}

	task := asynq.NewTask(shared.TypeCleanupProductImages, payload)
	_, err = s.enqueuer.Enqueue(task,
		asynq.Queue(shared.QueueProduct),
		asynq.MaxRetry(5),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		log.Error().
			Err(err).
			Str("product_id", productID).
			Int("external_ids", len(externalIDs)).
			Msg("Failed to enqueue image cleanup retry")
	}
}

func (s *productService) invalidateCache(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Msg("Cache invalidation failed")
	}
}
