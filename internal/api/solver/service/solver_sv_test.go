package solverService

import (
	"errors"
	"testing"

	"ProjectCube/internal/api/scan"
	"ProjectCube/internal/api/solver"
	solverRepository "ProjectCube/internal/api/solver/repository"
	"ProjectCube/internal/entity"
	"ProjectCube/pkg/colorspace"
	"ProjectCube/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

type fakeGemini struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGemini) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeGemini) Close() {}

type fakeSolveStore struct {
	records  []entity.SolveRecord
	stats    solverRepository.SolveStats
	statsErr error
}

func (f *fakeSolveStore) CreateSolve(_ context.Context, record entity.SolveRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeSolveStore) GetSolveByID(_ context.Context, id string) (entity.SolveRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return entity.SolveRecord{}, solver.ErrSolveNotFound
}

func (f *fakeSolveStore) GetSolves(_ context.Context, limit int) ([]entity.SolveRecord, error) {
	if limit > len(f.records) {
		limit = len(f.records)
	}
	return f.records[:limit], nil
}

func (f *fakeSolveStore) GetSolveStats(_ context.Context) (solverRepository.SolveStats, error) {
	return f.stats, f.statsErr
}

type fakeRepo struct {
	store *fakeSolveStore
}

func (f *fakeRepo) NewClient(bool) (solverRepository.Client, error) {
	return solverRepository.Client{
		Solve:    f.store,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fakeScanService struct {
	sessions map[string]entity.ScanSession
	deleted  []string
}

func (f *fakeScanService) CreateSession(context.Context) (entity.ScanSession, int, error) {
	return entity.ScanSession{}, 0, errors.New("not implemented")
}

func (f *fakeScanService) GetSession(_ context.Context, id string) (entity.ScanSession, error) {
	if session, ok := f.sessions[id]; ok {
		return session, nil
	}
	return entity.ScanSession{}, scan.ErrSessionNotFound
}

func (f *fakeScanService) ScanFace(context.Context, string, scan.ScanFaceRequest, []byte) (entity.FaceScanResult, error) {
	return entity.FaceScanResult{}, errors.New("not implemented")
}

func (f *fakeScanService) DeleteSession(_ context.Context, id string) error {
	if _, ok := f.sessions[id]; !ok {
		return scan.ErrSessionNotFound
	}
	delete(f.sessions, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeScanService) PreviewFrame([]byte) (scan.PreviewResult, error) {
	return scan.PreviewResult{}, errors.New("not implemented")
}

func inlineSolvedCube() map[string][3][3]string {
	solid := func(label string) [3][3]string {
		var grid [3][3]string
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				grid[row][col] = label
			}
		}
		return grid
	}

	return map[string][3][3]string{
		"U": solid("white"),
		"R": solid("red"),
		"F": solid("green"),
		"D": solid("yellow"),
		"L": solid("orange"),
		"B": solid("blue"),
	}
}

func newTestService(g *fakeGemini, store *fakeSolveStore, sessions map[string]entity.ScanSession) *solverService {
	return &solverService{
		log:          logrus.New(),
		solverRepo:   &fakeRepo{store: store},
		scanService:  &fakeScanService{sessions: sessions},
		geminiClient: g,
		utils:        utils.New(),
	}
}

func TestSolveInlineCube(t *testing.T) {
	g := &fakeGemini{response: `{"solution": "R U R' U'", "move_count": 4, "explanation": "test"}`}
	store := &fakeSolveStore{}
	svc := newTestService(g, store, nil)

	result, err := svc.Solve(context.Background(), solver.SolveRequest{Cube: inlineSolvedCube()})
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Len(t, result.Facelets, 54)
	assert.Equal(t, "R U R' U'", result.Solution)
	assert.Equal(t, 4, result.MoveCount)

	require.Len(t, store.records, 1)
	assert.Equal(t, entity.SolverGemini, store.records[0].Solver)
	assert.Equal(t, result.Facelets, store.records[0].Facelets)

	require.Len(t, g.prompts, 1)
	assert.Contains(t, g.prompts[0], result.Facelets)
}

func TestSolveFromSession(t *testing.T) {
	session := entity.ScanSession{ID: "sess-1", Faces: entity.CubeState{}}
	for rawID, grid := range inlineSolvedCube() {
		var face entity.Face
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				face[row][col] = colorspace.ColorLabel(grid[row][col])
			}
		}
		session.Faces[entity.FaceID(rawID)] = face
	}

	g := &fakeGemini{response: `{"solution": "U2"}`}
	store := &fakeSolveStore{}
	svc := newTestService(g, store, map[string]entity.ScanSession{"sess-1": session})

	result, err := svc.Solve(context.Background(), solver.SolveRequest{SessionID: "sess-1"})
	require.NoError(t, err)
	assert.Equal(t, "U2", result.Solution)
	assert.Equal(t, 1, result.MoveCount)

	require.Len(t, store.records, 1)
	assert.Equal(t, "sess-1", store.records[0].SessionID)

	// A recorded solve consumes the session.
	fake := svc.scanService.(*fakeScanService)
	assert.Equal(t, []string{"sess-1"}, fake.deleted)
	assert.NotContains(t, fake.sessions, "sess-1")
}

func TestSolveIncompleteCube(t *testing.T) {
	cube := inlineSolvedCube()
	delete(cube, "B")

	svc := newTestService(&fakeGemini{}, &fakeSolveStore{}, nil)

	_, err := svc.Solve(context.Background(), solver.SolveRequest{Cube: cube})
	assert.ErrorIs(t, err, solver.ErrCubeIncomplete)
}

func TestSolveInvalidColor(t *testing.T) {
	cube := inlineSolvedCube()
	grid := cube["U"]
	grid[0][0] = "magenta"
	cube["U"] = grid

	svc := newTestService(&fakeGemini{}, &fakeSolveStore{}, nil)

	_, err := svc.Solve(context.Background(), solver.SolveRequest{Cube: cube})
	assert.ErrorIs(t, err, solver.ErrInvalidCubeState)
}

func TestSolveSessionMissing(t *testing.T) {
	svc := newTestService(&fakeGemini{}, &fakeSolveStore{}, map[string]entity.ScanSession{})

	_, err := svc.Solve(context.Background(), solver.SolveRequest{SessionID: "unknown"})
	assert.ErrorIs(t, err, scan.ErrSessionNotFound)
}

func TestSolveGeminiFailure(t *testing.T) {
	g := &fakeGemini{err: errors.New("quota exceeded")}
	svc := newTestService(g, &fakeSolveStore{}, nil)

	_, err := svc.Solve(context.Background(), solver.SolveRequest{Cube: inlineSolvedCube()})
	assert.ErrorIs(t, err, solver.ErrSolverUnavailable)
}

func TestParseSolution(t *testing.T) {
	cases := []struct {
		name     string
		response string
		solution string
		moves    int
		wantErr  bool
	}{
		{
			name:     "clean json",
			response: `{"solution": "R U R' U'", "move_count": 4}`,
			solution: "R U R' U'",
			moves:    4,
		},
		{
			name:     "json wrapped in prose",
			response: "Here is the answer:\n```json\n{\"solution\": \"F2 B'\"}\n```",
			solution: "F2 B'",
			moves:    2,
		},
		{
			name:     "wrong move count corrected",
			response: `{"solution": "U D", "move_count": 99}`,
			solution: "U D",
			moves:    2,
		},
		{
			name:     "no json",
			response: "I cannot solve this",
			wantErr:  true,
		},
		{
			name:     "empty solution",
			response: `{"solution": ""}`,
			wantErr:  true,
		},
		{
			name:     "invalid move token",
			response: `{"solution": "R U X"}`,
			wantErr:  true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseSolution(tc.response)
			if tc.wantErr {
				assert.ErrorIs(t, err, solver.ErrSolutionParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.solution, got.Solution)
			assert.Equal(t, tc.moves, got.MoveCount)
		})
	}
}

func TestValidMove(t *testing.T) {
	valid := []string{"U", "U'", "U2", "R", "F'", "D2", "L", "B'"}
	for _, move := range valid {
		assert.True(t, validMove(move), move)
	}

	invalid := []string{"", "X", "U3", "R''", "UU2", "u"}
	for _, move := range invalid {
		assert.False(t, validMove(move), move)
	}
}

func TestBenchmarks(t *testing.T) {
	t.Run("placeholder when no solves", func(t *testing.T) {
		svc := newTestService(&fakeGemini{}, &fakeSolveStore{}, nil)

		rows, err := svc.Benchmarks(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 3)

		assert.Equal(t, entity.SolverGemini, rows[0].Solver)
		assert.Equal(t, geminiPlaceholder.AvgMoveCount, rows[0].AvgMoveCount)
		assert.Equal(t, entity.SolverKociemba, rows[1].Solver)
		assert.Equal(t, entity.SolverThistlethwaite, rows[2].Solver)
	})

	t.Run("recorded stats override placeholder", func(t *testing.T) {
		store := &fakeSolveStore{stats: solverRepository.SolveStats{
			Count:        12,
			AvgMoveCount: 61.4,
			AvgSolveMS:   2100,
		}}
		svc := newTestService(&fakeGemini{}, store, nil)

		rows, err := svc.Benchmarks(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 61.4, rows[0].AvgMoveCount)
		assert.Equal(t, 2100.0, rows[0].AvgSolveMS)
	})

	t.Run("stats error falls back to placeholder", func(t *testing.T) {
		store := &fakeSolveStore{statsErr: errors.New("db down")}
		svc := newTestService(&fakeGemini{}, store, nil)

		rows, err := svc.Benchmarks(context.Background())
		require.NoError(t, err)
		assert.Equal(t, geminiPlaceholder.AvgMoveCount, rows[0].AvgMoveCount)
	})
}
