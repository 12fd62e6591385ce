package scanHandler

import (
	"ProjectCube/internal/api/scan"
	contextPkg "ProjectCube/pkg/context"
	"ProjectCube/pkg/handlerUtil"
	"ProjectCube/pkg/log"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
)

func (h *ScanHandler) CreateSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	session, expiresIn, err := h.scanService.CreateSession(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_session")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"session_id": session.ID,
	}).Info("Scan session created")

	return errHandler.HandleSuccess(ctx, fiber.StatusCreated, scan.CreateSessionResponse{
		Data: scan.SessionData{
			SessionID: session.ID,
			ExpiresIn: expiresIn,
		},
	})
}

func (h *ScanHandler) GetSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	session, err := h.scanService.GetSession(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_session")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, scan.SessionStateResponse{
		Data:         session,
		MissingFaces: session.Faces.MissingFaces(),
		Complete:     session.Faces.Complete(),
	})
}

func (h *ScanHandler) ScanFace(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing face scan request")

	var req scan.ScanFaceRequest
	var frame []byte

	file, err := ctx.FormFile("image")
	if err == nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"file_name":  file.Filename,
			"file_size":  file.Size,
		}).Debug("Processing file upload")

		if err := h.utils.ValidateImageFile(file); err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "validate_image_file")
		}

		fileContent, err := file.Open()
		if err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "open_file")
		}
		defer fileContent.Close()

		frame, err = h.utils.ReadFileBytes(fileContent)
		if err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_file")
		}

		req.FaceID = ctx.FormValue("face_id")
		req.Archive = ctx.FormValue("archive") == "true"
		if err := h.validator.Var(req.FaceID, "required,oneof=U R F D L B"); err != nil {
			return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
		}

		if regionValue := ctx.FormValue("region"); regionValue != "" {
			var region scan.SampleRegion
			if err := json.Unmarshal([]byte(regionValue), &region); err != nil {
				return errHandler.Handle(ctx, requestID, scan.ErrInvalidRegion, ctx.Path(), "parse_region")
			}
			if err := h.validator.Struct(region); err != nil {
				return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
			}
			req.Region = &region
		}
	} else {
		if err := ctx.BodyParser(&req); err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
		}

		if err := h.validator.Struct(req); err != nil {
			return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
		}

		frame, err = h.utils.DecodeBase64Image(req.ImageBase64)
		if err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "decode_base64")
		}
	}

	result, err := h.scanService.ScanFace(c, ctx.Params("id"), req, frame)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "scan_face")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		log.WithRequestID(c).WithFields(log.Fields{
			"path":    ctx.Path(),
			"face_id": result.FaceID,
		}).Info("Face scan successful")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, scan.ScanFaceResponse{
			Data: result,
		})
	}
}

func (h *ScanHandler) handlePreviewWebSocket(c *websocket.Conn) {
	h.log.Info("Scan preview WebSocket client connected")
	defer h.log.Info("Scan preview WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	maxReadTimeout := 60 * time.Second

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Scan preview WebSocket error: %v", err)
			} else {
				h.log.Info("Scan preview WebSocket connection closed")
			}
			break
		}

		if messageType != websocket.BinaryMessage {
			h.log.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		result, err := h.scanService.PreviewFrame(message)
		if err != nil {
			if writeErr := c.WriteJSON(map[string]string{"error": err.Error()}); writeErr != nil {
				h.log.Errorf("Error sending error response: %v", writeErr)
				break
			}
			continue
		}

		if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			h.log.Errorf("Error setting write deadline: %v", err)
			break
		}

		if err := c.WriteJSON(result); err != nil {
			h.log.Errorf("Error writing JSON response: %v", err)
			break
		}

		if err := c.SetWriteDeadline(time.Time{}); err != nil {
			h.log.Errorf("Error resetting write deadline: %v", err)
			break
		}
	}
}
