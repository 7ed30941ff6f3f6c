package shared

// Background task types and queues shared by the API (producer) and the worker
const (
	TypeDeleteEventImage  = "media:delete_event_image"
	TypeSweepOrphanImages = "media:sweep_orphan_images"

	QueueMedia       = "media"
	QueueMaintenance = "maintenance"
)

// DeleteImagePayload identifies an uploaded image by its public URL
type DeleteImagePayload struct {
	ImageURL string `json:"imageUrl"`
}

// SweepOrphanImagesPayload is empty; the sweep reads its grace period from config
type SweepOrphanImagesPayload struct{}
