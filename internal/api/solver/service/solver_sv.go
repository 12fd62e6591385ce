package solverService

import (
	"ProjectCube/internal/api/solver"
	"ProjectCube/internal/entity"
	"ProjectCube/pkg/colorspace"
	contextPkg "ProjectCube/pkg/context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const solvePrompt = `You are a Rubik's cube solving engine.
The cube state below uses the standard facelet notation: 54 characters,
faces in U R F D L B order, each face read row by row from the top left.

Cube state: %s

Return the move sequence that solves this cube in standard notation
(U, U', U2, R, R', R2, and so on), as JSON only:
{
	"solution": "R U R' U' ...",
	"move_count": 20,
	"explanation": "one short sentence"
}
Return ONLY the JSON object, no extra text.`

func (s *solverService) Solve(ctx context.Context, req solver.SolveRequest) (solver.SolveData, error) {
	requestID := contextPkg.GetRequestID(ctx)

	cube, sessionID, err := s.resolveCube(ctx, req)
	if err != nil {
		return solver.SolveData{}, err
	}

	if !cube.Complete() {
		return solver.SolveData{}, solver.ErrCubeIncomplete
	}

	facelets, err := cube.Facelets()
	if err != nil {
		return solver.SolveData{}, fmt.Errorf("%w: %v", solver.ErrInvalidCubeState, err)
	}

	start := time.Now()
	raw, err := s.geminiClient.GenerateText(ctx, fmt.Sprintf(solvePrompt, facelets))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Gemini solve request failed")
		return solver.SolveData{}, fmt.Errorf("%w: %v", solver.ErrSolverUnavailable, err)
	}
	duration := time.Since(start)

	solution, err := parseSolution(raw)
	if err != nil {
		return solver.SolveData{}, err
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return solver.SolveData{}, err
	}

	record := entity.SolveRecord{
		ID:         id,
		SessionID:  sessionID,
		Facelets:   facelets,
		Solution:   solution.Solution,
		MoveCount:  solution.MoveCount,
		Solver:     entity.SolverGemini,
		DurationMS: duration.Milliseconds(),
	}

	client, err := s.solverRepo.NewClient(false)
	if err != nil {
		return solver.SolveData{}, err
	}
	if err := client.Solve.CreateSolve(ctx, record); err != nil {
		return solver.SolveData{}, err
	}

	if sessionID != "" {
		// The session served its purpose once the solve is recorded.
		if delErr := s.scanService.DeleteSession(ctx, sessionID); delErr != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": sessionID,
				"error":      delErr.Error(),
			}).Warn("Failed to delete solved scan session")
		}
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"solve_id":   id,
		"moves":      solution.MoveCount,
		"latency_ms": duration.Milliseconds(),
	}).Info("Cube solved")

	return solver.SolveData{
		ID:          id,
		Facelets:    facelets,
		Solution:    solution.Solution,
		MoveCount:   solution.MoveCount,
		Explanation: solution.Explanation,
		DurationMS:  duration.Milliseconds(),
	}, nil
}

func (s *solverService) GetSolveByID(ctx context.Context, id string) (entity.SolveRecord, error) {
	client, err := s.solverRepo.NewClient(false)
	if err != nil {
		return entity.SolveRecord{}, err
	}
	return client.Solve.GetSolveByID(ctx, id)
}

func (s *solverService) GetSolves(ctx context.Context, limit int) ([]entity.SolveRecord, error) {
	client, err := s.solverRepo.NewClient(false)
	if err != nil {
		return nil, err
	}
	return client.Solve.GetSolves(ctx, limit)
}

// resolveCube produces the cube state either from a scan session or from
// an inline request payload.
func (s *solverService) resolveCube(ctx context.Context, req solver.SolveRequest) (entity.CubeState, string, error) {
	if req.SessionID != "" {
		session, err := s.scanService.GetSession(ctx, req.SessionID)
		if err != nil {
			return nil, "", err
		}
		return session.Faces, session.ID, nil
	}

	cube := entity.CubeState{}
	for rawID, grid := range req.Cube {
		id := entity.FaceID(rawID)
		if !entity.ValidFaceID(id) {
			return nil, "", fmt.Errorf("%w: unknown face %q", solver.ErrInvalidCubeState, rawID)
		}

		var face entity.Face
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				label := colorspace.ColorLabel(grid[row][col])
				if !validLabel(label) {
					return nil, "", fmt.Errorf("%w: unknown color %q", solver.ErrInvalidCubeState, grid[row][col])
				}
				face[row][col] = label
			}
		}
		cube[id] = face
	}

	return cube, "", nil
}

func validLabel(label colorspace.ColorLabel) bool {
	for _, known := range colorspace.Labels {
		if label == known {
			return true
		}
	}
	return false
}

// geminiSolution mirrors the JSON shape the model is prompted to return.
type geminiSolution struct {
	Solution    string `json:"solution"`
	MoveCount   int    `json:"move_count"`
	Explanation string `json:"explanation"`
}

func parseSolution(response string) (geminiSolution, error) {
	jsonStart := strings.Index(response, "{")
	jsonEnd := strings.LastIndex(response, "}")

	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		return geminiSolution{}, solver.ErrSolutionParse
	}

	var solution geminiSolution
	if err := json.Unmarshal([]byte(response[jsonStart:jsonEnd+1]), &solution); err != nil {
		return geminiSolution{}, solver.ErrSolutionParse
	}

	moves, err := parseMoves(solution.Solution)
	if err != nil {
		return geminiSolution{}, err
	}

	solution.Solution = strings.Join(moves, " ")
	if solution.MoveCount != len(moves) {
		solution.MoveCount = len(moves)
	}

	return solution, nil
}

// parseMoves validates a move sequence in standard face-turn notation.
func parseMoves(sequence string) ([]string, error) {
	fields := strings.Fields(sequence)
	if len(fields) == 0 {
		return nil, solver.ErrSolutionParse
	}

	for _, move := range fields {
		if !validMove(move) {
			return nil, fmt.Errorf("%w: bad move %q", solver.ErrSolutionParse, move)
		}
	}

	return fields, nil
}

func validMove(move string) bool {
	if len(move) == 0 || len(move) > 2 {
		return false
	}
	if !strings.ContainsRune("URFDLB", rune(move[0])) {
		return false
	}
	if len(move) == 2 && move[1] != '\'' && move[1] != '2' {
		return false
	}
	return true
}
