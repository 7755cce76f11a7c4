package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"product-catalog-backend/internal/shared"
)

// ImageRemover xóa một batch external ids, trả về ids xóa thất bại
// *storage.MinIOStorage satisfy interface này
type ImageRemover interface {
	RemoveAll(ctx context.Context, externalIDs []string) []string
}

// CleanupImagesHandler retry các image deletion thất bại inline
// (rollback sau failed create, hoặc cleanup trong delete operation)
type CleanupImagesHandler struct {
	images ImageRemover
}

func NewCleanupImagesHandler(images ImageRemover) *CleanupImagesHandler {
	return &CleanupImagesHandler{images: images}
}

// ProcessTask xóa các orphaned images khỏi object store
// Deletion idempotent: key đã xóa rồi thì remove là no-op success,
// nên retry cả batch khi một phần fail là an toàn
func (h *CleanupImagesHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.CleanupProductImagesPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal CleanupProductImages payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("product_id", payload.ProductID).
		Int("external_ids", len(payload.ExternalIDs)).
		Msg("Retrying orphaned image cleanup")

	failed := h.images.RemoveAll(ctx, payload.ExternalIDs)
	if len(failed) > 0 {
		return fmt.Errorf("cleanup images: %d of %d deletions failed",
			len(failed), len(payload.ExternalIDs))
	}

	log.Info().
		Str("product_id", payload.ProductID).
		Msg("Orphaned images cleaned up")

	return nil
}
