package scanHandler

import (
	scanService "ProjectCube/internal/api/scan/service"
	"ProjectCube/internal/middleware"
	"ProjectCube/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type ScanHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	scanService scanService.IScanService
	utils       utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ss scanService.IScanService,
	utils utils.IUtils,
) *ScanHandler {
	return &ScanHandler{
		log:         log,
		validator:   validator,
		middleware:  middleware,
		scanService: ss,
		utils:       utils,
	}
}

func (h *ScanHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	scan := srv.Group("/scan")
	scan.Post("/session", h.CreateSession)
	scan.Get("/session/:id", h.GetSession)
	scan.Post("/session/:id/face", h.ScanFace)

	scan.Use("/ws", wsMiddleware)
	scan.Get("/ws", websocket.New(h.handlePreviewWebSocket))
}
