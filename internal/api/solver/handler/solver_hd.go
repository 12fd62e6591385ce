package solverHandler

import (
	"ProjectCube/internal/api/solver"
	contextPkg "ProjectCube/pkg/context"
	"ProjectCube/pkg/handlerUtil"
	"ProjectCube/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *SolverHandler) Solve(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing solve request")

	var req solver.SolveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.solverService.Solve(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "solve_cube")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		log.WithRequestID(c).WithFields(log.Fields{
			"path":     ctx.Path(),
			"solve_id": result.ID,
			"moves":    result.MoveCount,
		}).Info("Solve successful")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, solver.SolveResponse{
			Data: result,
		})
	}
}

func (h *SolverHandler) GetSolves(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	limit := ctx.QueryInt("limit", 20)
	records, err := h.solverService.GetSolves(c, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_solves")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, solver.SolveHistoryResponse{
		Data: records,
	})
}

func (h *SolverHandler) GetSolveByID(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	record, err := h.solverService.GetSolveByID(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_solve_by_id")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, solver.SolveRecordResponse{
		Data: record,
	})
}

func (h *SolverHandler) GetComparison(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	benchmarks, err := h.solverService.Benchmarks(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_comparison")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, solver.ComparisonResponse{
		Data: benchmarks,
	})
}
