package solverHandler

import (
	solverService "ProjectCube/internal/api/solver/service"
	"ProjectCube/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SolverHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	solverService solverService.ISolverService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ss solverService.ISolverService,
) *SolverHandler {
	return &SolverHandler{
		log:           log,
		validator:     validator,
		middleware:    middleware,
		solverService: ss,
	}
}

func (h *SolverHandler) Start(srv fiber.Router) {
	solver := srv.Group("/solver")
	solver.Post("/solve", h.middleware.NewRateLimiter, h.Solve)
	solver.Get("/solves", h.GetSolves)
	solver.Get("/solves/:id", h.GetSolveByID)
	solver.Get("/comparison", h.GetComparison)
	solver.Get("/comparison/chart", h.GetComparisonChart)
}
