package scan

import (
	"ProjectCube/internal/entity"
	"ProjectCube/pkg/colorspace"
)

type CreateSessionResponse struct {
	Data SessionData `json:"data"`
}

type SessionData struct {
	SessionID string `json:"session_id"`
	ExpiresIn int    `json:"expires_in_seconds"`
}

// SampleRegion is the face rectangle inside the captured frame. When
// omitted, the largest centered square of the frame is used.
type SampleRegion struct {
	X      int `json:"x" validate:"gte=0"`
	Y      int `json:"y" validate:"gte=0"`
	Width  int `json:"width" validate:"gt=0"`
	Height int `json:"height" validate:"gt=0"`
}

type ScanFaceRequest struct {
	FaceID      string        `json:"face_id" validate:"required,oneof=U R F D L B"`
	ImageBase64 string        `json:"image_base64" validate:"required"`
	Region      *SampleRegion `json:"region,omitempty"`
	Archive     bool          `json:"archive,omitempty"`
}

type ScanFaceResponse struct {
	Data entity.FaceScanResult `json:"data"`
}

type SessionStateResponse struct {
	Data         entity.ScanSession `json:"data"`
	MissingFaces []entity.FaceID    `json:"missing_faces"`
	Complete     bool               `json:"complete"`
}

// PreviewResult is the payload streamed back over the live-preview
// websocket for every classified frame.
type PreviewResult struct {
	Grid [3][3]colorspace.GridCell `json:"grid"`
}
