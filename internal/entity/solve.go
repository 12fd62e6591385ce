package entity

import "time"

type SolverName string

const (
	SolverGemini         SolverName = "gemini"
	SolverKociemba       SolverName = "kociemba"
	SolverThistlethwaite SolverName = "thistlethwaite"
)

type SolveRecord struct {
	ID         string     `json:"id"`
	SessionID  string     `json:"session_id"`
	Facelets   string     `json:"facelets"`
	Solution   string     `json:"solution"`
	MoveCount  int        `json:"move_count"`
	Solver     SolverName `json:"solver"`
	DurationMS int64      `json:"duration_ms"`
	CreatedAt  time.Time  `json:"created_at"`
}

// SolverBenchmark is one row of the canned solver comparison. The two
// classical solvers are not implemented here; their figures are
// representative reference numbers, not measurements.
type SolverBenchmark struct {
	Solver       SolverName `json:"solver"`
	AvgMoveCount float64    `json:"avg_move_count"`
	AvgSolveMS   float64    `json:"avg_solve_ms"`
	Optimal      bool       `json:"optimal"`
	Description  string     `json:"description"`
}
