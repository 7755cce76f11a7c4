package shared

// Asynq task types
const (
	TypeCleanupProductImages = "product:cleanup_images"
)

// Asynq queue names
const (
	QueueDefault = "default"
	QueueProduct = "product"
)

// CleanupProductImagesPayload carries the external ids whose deletion failed
// inline and must be retried by the worker.
type CleanupProductImagesPayload struct {
	ProductID   string   `json:"productId,omitempty"`
	ExternalIDs []string `json:"externalIds"`
}
