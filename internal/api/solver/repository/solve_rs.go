package solverRepository

import (
	"ProjectCube/internal/api/solver"
	"ProjectCube/internal/entity"
	contextPkg "ProjectCube/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type SolveRecordDB struct {
	ID         sql.NullString `db:"id"`
	SessionID  sql.NullString `db:"session_id"`
	Facelets   sql.NullString `db:"facelets"`
	Solution   sql.NullString `db:"solution"`
	MoveCount  sql.NullInt64  `db:"move_count"`
	Solver     sql.NullString `db:"solver"`
	DurationMS sql.NullInt64  `db:"duration_ms"`
	CreatedAt  time.Time      `db:"created_at"`
}

func (r *solveRepository) CreateSolve(c context.Context, record entity.SolveRecord) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":          record.ID,
		"session_id":  record.SessionID,
		"facelets":    record.Facelets,
		"solution":    record.Solution,
		"move_count":  record.MoveCount,
		"solver":      record.Solver,
		"duration_ms": record.DurationMS,
		"created_at":  time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateSolve, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateSolve")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating solve record")
		return err
	}

	return nil
}

func (r *solveRepository) GetSolveByID(c context.Context, id string) (entity.SolveRecord, error) {
	requestID := contextPkg.GetRequestID(c)
	var record SolveRecordDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetSolveByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSolveByID named query preparation err")
		return entity.SolveRecord{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"solve_id":   id,
			}).Warn("GetSolveByID no rows found")
			return entity.SolveRecord{}, solver.ErrSolveNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSolveByID execution err")
		return entity.SolveRecord{}, err
	}

	return r.makeSolveRecord(record), nil
}

func (r *solveRepository) GetSolves(c context.Context, limit int) ([]entity.SolveRecord, error) {
	requestID := contextPkg.GetRequestID(c)

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	argsKV := map[string]interface{}{
		"limit": limit,
	}

	query, args, err := sqlx.Named(queryGetSolves, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSolves named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	var rows []SolveRecordDB
	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSolves execution err")
		return nil, err
	}

	records := make([]entity.SolveRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, r.makeSolveRecord(row))
	}

	return records, nil
}

func (r *solveRepository) GetSolveStats(c context.Context) (SolveStats, error) {
	requestID := contextPkg.GetRequestID(c)

	argsKV := map[string]interface{}{
		"solver": entity.SolverGemini,
	}

	query, args, err := sqlx.Named(queryGetSolveStats, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSolveStats named query preparation err")
		return SolveStats{}, err
	}

	query = r.q.Rebind(query)

	var stats SolveStats
	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&stats); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSolveStats execution err")
		return SolveStats{}, err
	}

	return stats, nil
}

func (r *solveRepository) makeSolveRecord(row SolveRecordDB) entity.SolveRecord {
	return entity.SolveRecord{
		ID:         row.ID.String,
		SessionID:  row.SessionID.String,
		Facelets:   row.Facelets.String,
		Solution:   row.Solution.String,
		MoveCount:  int(row.MoveCount.Int64),
		Solver:     entity.SolverName(row.Solver.String),
		DurationMS: row.DurationMS.Int64,
		CreatedAt:  row.CreatedAt,
	}
}
