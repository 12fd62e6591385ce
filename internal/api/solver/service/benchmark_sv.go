package solverService

import (
	"ProjectCube/internal/entity"

	"golang.org/x/net/context"
)

// Reference figures for the two classical solvers. Neither engine is
// implemented here; the numbers are representative literature values
// used for the comparison view only.
var classicalBenchmarks = []entity.SolverBenchmark{
	{
		Solver:       entity.SolverKociemba,
		AvgMoveCount: 21.5,
		AvgSolveMS:   42,
		Optimal:      false,
		Description:  "Two-phase algorithm, reference figures",
	},
	{
		Solver:       entity.SolverThistlethwaite,
		AvgMoveCount: 35.8,
		AvgSolveMS:   118,
		Optimal:      false,
		Description:  "Four-stage group reduction, reference figures",
	},
}

// Defaults shown before any AI solve has been recorded.
var geminiPlaceholder = entity.SolverBenchmark{
	Solver:       entity.SolverGemini,
	AvgMoveCount: 74,
	AvgSolveMS:   3200,
	Optimal:      false,
	Description:  "Generative model, placeholder until solves are recorded",
}

func (s *solverService) Benchmarks(ctx context.Context) ([]entity.SolverBenchmark, error) {
	geminiRow := geminiPlaceholder

	client, err := s.solverRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	stats, err := client.Solve.GetSolveStats(ctx)
	if err != nil {
		// Comparison still renders with the placeholder row.
		s.log.WithField("error", err.Error()).Warn("Failed to load solve stats, using placeholder")
	} else if stats.Count > 0 {
		geminiRow.AvgMoveCount = stats.AvgMoveCount
		geminiRow.AvgSolveMS = stats.AvgSolveMS
		geminiRow.Description = "Generative model, averaged over recorded solves"
	}

	benchmarks := make([]entity.SolverBenchmark, 0, len(classicalBenchmarks)+1)
	benchmarks = append(benchmarks, geminiRow)
	benchmarks = append(benchmarks, classicalBenchmarks...)

	return benchmarks, nil
}
