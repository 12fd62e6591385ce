package entity

import "time"

// ScanSession aggregates face scans for one cube, one face at a time.
// Sessions live in Redis and expire when left unfinished.
type ScanSession struct {
	ID        string            `json:"id"`
	Faces     CubeState         `json:"faces"`
	Snapshots map[FaceID]string `json:"snapshots,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// FaceScanResult is the outcome of classifying one captured frame.
type FaceScanResult struct {
	FaceID      FaceID        `json:"face_id"`
	Face        Face          `json:"face"`
	DeltaE      [3][3]float64 `json:"delta_e"`
	SnapshotURL string        `json:"snapshot_url,omitempty"`
}
