package handlerUtil

import (
	"ProjectCube/internal/api/scan"
	"ProjectCube/internal/api/solver"
	"ProjectCube/pkg/log"
	"ProjectCube/pkg/response"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	// Scan domain errors
	if errors.Is(err, scan.ErrSessionNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Scan session not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Scan session not found or expired",
			"code":    "SESSION_NOT_FOUND",
		})
	}

	if errors.Is(err, scan.ErrInvalidFaceID) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid face identifier")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Face identifier must be one of U, R, F, D, L, B",
			"code":    "INVALID_FACE_ID",
		})
	}

	if errors.Is(err, scan.ErrInvalidFrame) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Frame could not be decoded")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Captured frame is not a decodable image",
			"code":    "INVALID_FRAME",
		})
	}

	if errors.Is(err, scan.ErrInvalidRegion) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Sample region outside frame")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Sample region does not fit inside the frame",
			"code":    "INVALID_REGION",
		})
	}

	// Solver domain errors
	if errors.Is(err, solver.ErrCubeIncomplete) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Cube state incomplete")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Not all six faces have been scanned",
			"code":    "CUBE_INCOMPLETE",
		})
	}

	if errors.Is(err, solver.ErrInvalidCubeState) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Cube state invalid")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Scanned cube state is not physically plausible, rescan the faces",
			"code":    "INVALID_CUBE_STATE",
		})
	}

	if errors.Is(err, solver.ErrSolverUnavailable) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Solver backend unavailable")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Solver backend is unavailable, try again later",
			"code":    "SOLVER_UNAVAILABLE",
		})
	}

	if errors.Is(err, solver.ErrSolutionParse) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Solver response unparseable")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Solver returned an unusable response",
			"code":    "SOLUTION_PARSE_ERROR",
		})
	}

	if errors.Is(err, solver.ErrSolveNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Solve record not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Solve record not found",
			"code":    "SOLVE_NOT_FOUND",
		})
	}

	traceID := log.ErrorWithTraceID(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}, "Unhandled error")

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "Internal server error",
		Code:    "INTERNAL_SERVER_ERROR",
		Details: "trace_id: " + traceID,
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Request validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
