package solverService

import (
	scanService "ProjectCube/internal/api/scan/service"
	"ProjectCube/internal/api/solver"
	solverRepository "ProjectCube/internal/api/solver/repository"
	"ProjectCube/internal/entity"
	"ProjectCube/pkg/gemini"
	"ProjectCube/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type ISolverService interface {
	Solve(ctx context.Context, req solver.SolveRequest) (solver.SolveData, error)
	GetSolveByID(ctx context.Context, id string) (entity.SolveRecord, error)
	GetSolves(ctx context.Context, limit int) ([]entity.SolveRecord, error)
	Benchmarks(ctx context.Context) ([]entity.SolverBenchmark, error)
}

type solverService struct {
	log          *logrus.Logger
	solverRepo   solverRepository.Repository
	scanService  scanService.IScanService
	geminiClient gemini.IGemini
	utils        utils.IUtils
}

func NewSolverService(
	log *logrus.Logger,
	solverRepo solverRepository.Repository,
	ss scanService.IScanService,
	geminiClient gemini.IGemini,
	utils utils.IUtils,
) ISolverService {
	return &solverService{
		log:          log,
		solverRepo:   solverRepo,
		scanService:  ss,
		geminiClient: geminiClient,
		utils:        utils,
	}
}
