package solver

import (
	"ProjectCube/pkg/response"
	"errors"
	"net/http"
)

var (
	ErrInternalServerError = response.NewError(http.StatusInternalServerError, "internal server error")
	ErrBadRequest          = response.NewError(http.StatusBadRequest, "bad request")

	ErrCubeIncomplete    = errors.New("cube state is incomplete")
	ErrInvalidCubeState  = errors.New("cube state is not physically plausible")
	ErrSolverUnavailable = errors.New("solver backend unavailable")
	ErrSolutionParse     = errors.New("solver response could not be parsed")
	ErrSolveNotFound     = errors.New("solve record not found")
)
