package solver

import (
	"ProjectCube/internal/entity"
)

type SolveRequest struct {
	SessionID string                  `json:"session_id" validate:"required_without=Cube"`
	Cube      map[string][3][3]string `json:"cube,omitempty" validate:"required_without=SessionID"`
}

type SolveResponse struct {
	Data SolveData `json:"data"`
}

type SolveData struct {
	ID          string `json:"id"`
	Facelets    string `json:"facelets"`
	Solution    string `json:"solution"`
	MoveCount   int    `json:"move_count"`
	Explanation string `json:"explanation,omitempty"`
	DurationMS  int64  `json:"duration_ms"`
}

type SolveHistoryResponse struct {
	Data []entity.SolveRecord `json:"data"`
}

type SolveRecordResponse struct {
	Data entity.SolveRecord `json:"data"`
}

type ComparisonResponse struct {
	Data []entity.SolverBenchmark `json:"data"`
}
