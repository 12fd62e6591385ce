package scanService

import (
	"ProjectCube/internal/api/scan"
	"ProjectCube/internal/entity"
	"ProjectCube/pkg/colorspace"
	contextPkg "ProjectCube/pkg/context"
	redisPkg "ProjectCube/pkg/redis"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func sessionKey(id string) string {
	return fmt.Sprintf("scan:session:%s", id)
}

func (s *scanService) CreateSession(ctx context.Context) (entity.ScanSession, int, error) {
	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return entity.ScanSession{}, 0, err
	}

	session := entity.ScanSession{
		ID:        id,
		Faces:     entity.CubeState{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.saveSession(ctx, session); err != nil {
		return entity.ScanSession{}, 0, err
	}

	s.log.WithField("session_id", id).Info("Scan session created")
	return session, int(sessionTTL.Seconds()), nil
}

func (s *scanService) GetSession(ctx context.Context, sessionID string) (entity.ScanSession, error) {
	return s.loadSession(ctx, sessionID)
}

func (s *scanService) ScanFace(ctx context.Context, sessionID string, req scan.ScanFaceRequest, frame []byte) (entity.FaceScanResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	faceID := entity.FaceID(req.FaceID)
	if !entity.ValidFaceID(faceID) {
		return entity.FaceScanResult{}, scan.ErrInvalidFaceID
	}

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return entity.FaceScanResult{}, err
	}

	img, format, err := s.utils.DecodeFrame(frame)
	if err != nil {
		return entity.FaceScanResult{}, scan.ErrInvalidFrame
	}

	region, err := resolveRegion(img, req.Region)
	if err != nil {
		return entity.FaceScanResult{}, err
	}

	grid := colorspace.SampleFace(img, region)

	result := entity.FaceScanResult{FaceID: faceID}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			result.Face[row][col] = grid[row][col].Label
			result.DeltaE[row][col] = grid[row][col].DeltaE
		}
	}

	if req.Archive && s.s3Client != nil {
		name := fmt.Sprintf("%s-%s.%s", sessionID, faceID, snapshotExt(format))
		url, upErr := s.s3Client.UploadSnapshot(frame, name, "image/"+format)
		if upErr != nil {
			// A failed archive never fails the scan.
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": sessionID,
				"error":      upErr.Error(),
			}).Warn("Failed to archive face snapshot")
		} else {
			if session.Snapshots == nil {
				session.Snapshots = map[entity.FaceID]string{}
			}
			session.Snapshots[faceID] = url
			result.SnapshotURL = s.presignSnapshot(requestID, url)
		}
	}

	session.Faces[faceID] = result.Face
	session.UpdatedAt = time.Now()
	if err := s.saveSession(ctx, session); err != nil {
		return entity.FaceScanResult{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
		"face_id":    faceID,
		"scanned":    len(session.Faces),
	}).Info("Face scanned into session")

	return result, nil
}

// DeleteSession drops a finished session and its archived snapshots.
func (s *scanService) DeleteSession(ctx context.Context, sessionID string) error {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return err
	}

	if s.s3Client != nil {
		for faceID, url := range session.Snapshots {
			if delErr := s.s3Client.DeleteSnapshot(url); delErr != nil {
				s.log.WithFields(logrus.Fields{
					"session_id": sessionID,
					"face_id":    faceID,
					"error":      delErr.Error(),
				}).Warn("Failed to delete archived snapshot")
			}
		}
	}

	if err := s.redisServer.DeleteSession(ctx, sessionKey(sessionID)); err != nil {
		return err
	}

	s.log.WithField("session_id", sessionID).Info("Scan session deleted")
	return nil
}

// PreviewFrame classifies a frame without touching any session, for the
// live websocket preview.
func (s *scanService) PreviewFrame(frame []byte) (scan.PreviewResult, error) {
	img, _, err := s.utils.DecodeFrame(frame)
	if err != nil {
		return scan.PreviewResult{}, scan.ErrInvalidFrame
	}

	region, err := resolveRegion(img, nil)
	if err != nil {
		return scan.PreviewResult{}, err
	}

	return scan.PreviewResult{Grid: colorspace.SampleFace(img, region)}, nil
}

// presignSnapshot trades the raw object URL for a time-limited one. Clients
// get the presigned form; the session keeps the raw URL for cleanup.
func (s *scanService) presignSnapshot(requestID, url string) string {
	presigned, err := s.s3Client.PresignUrl(url)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to presign snapshot URL")
		return url
	}
	return presigned
}

func snapshotExt(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}

// resolveRegion maps an optional request region onto the frame, falling
// back to the largest centered square.
func resolveRegion(img image.Image, req *scan.SampleRegion) (image.Rectangle, error) {
	bounds := img.Bounds()

	if req == nil {
		side := bounds.Dx()
		if bounds.Dy() < side {
			side = bounds.Dy()
		}
		cx := bounds.Min.X + bounds.Dx()/2
		cy := bounds.Min.Y + bounds.Dy()/2
		return image.Rect(cx-side/2, cy-side/2, cx+side/2, cy+side/2), nil
	}

	rect := image.Rect(req.X, req.Y, req.X+req.Width, req.Y+req.Height)
	if !rect.In(bounds) {
		return image.Rectangle{}, scan.ErrInvalidRegion
	}
	return rect, nil
}

func (s *scanService) saveSession(ctx context.Context, session entity.ScanSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.redisServer.SetSession(ctx, sessionKey(session.ID), string(payload), sessionTTL)
}

func (s *scanService) loadSession(ctx context.Context, sessionID string) (entity.ScanSession, error) {
	payload, err := s.redisServer.GetSession(ctx, sessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redisPkg.ErrSessionNotFound) {
			return entity.ScanSession{}, scan.ErrSessionNotFound
		}
		return entity.ScanSession{}, err
	}

	var session entity.ScanSession
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return entity.ScanSession{}, err
	}
	if session.Faces == nil {
		session.Faces = entity.CubeState{}
	}
	return session, nil
}
