package model

// ImageKeyPrefix is where event images live inside the bucket
const ImageKeyPrefix = "events/"

type UploadImageResponse struct {
	URL string `json:"url"`
}

// SweepResult summarises one orphaned image sweep
type SweepResult struct {
	Scanned int
	Removed int
}
