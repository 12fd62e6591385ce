package scan

import (
	"ProjectCube/pkg/response"
	"errors"
	"net/http"
)

var (
	ErrInternalServerError = response.NewError(http.StatusInternalServerError, "internal server error")
	ErrBadRequest          = response.NewError(http.StatusBadRequest, "bad request")

	ErrSessionNotFound = errors.New("scan session not found")
	ErrInvalidFaceID   = errors.New("invalid face identifier")
	ErrInvalidFrame    = errors.New("frame could not be decoded")
	ErrInvalidRegion   = errors.New("sample region is outside the frame")
)
