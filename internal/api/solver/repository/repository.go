package solverRepository

import (
	"ProjectCube/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Solve:    &solveRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Solve interface {
		CreateSolve(c context.Context, record entity.SolveRecord) error
		GetSolveByID(c context.Context, id string) (entity.SolveRecord, error)
		GetSolves(c context.Context, limit int) ([]entity.SolveRecord, error)
		GetSolveStats(c context.Context) (SolveStats, error)
	}

	Commit   func() error
	Rollback func() error
}

// SolveStats aggregates the persisted AI solves for the comparison view.
type SolveStats struct {
	Count        int     `db:"count"`
	AvgMoveCount float64 `db:"avg_move_count"`
	AvgSolveMS   float64 `db:"avg_solve_ms"`
}

type solveRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
