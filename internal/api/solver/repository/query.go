package solverRepository

const queryCreateSolve = `
INSERT INTO solves (id, session_id, facelets, solution, move_count, solver, duration_ms, created_at)
VALUES (:id, :session_id, :facelets, :solution, :move_count, :solver, :duration_ms, :created_at)
`

const queryGetSolveByID = `
SELECT id, session_id, facelets, solution, move_count, solver, duration_ms, created_at
FROM solves
WHERE id = :id
`

const queryGetSolves = `
SELECT id, session_id, facelets, solution, move_count, solver, duration_ms, created_at
FROM solves
ORDER BY created_at DESC
LIMIT :limit
`

const queryGetSolveStats = `
SELECT COUNT(*)                      AS count,
       COALESCE(AVG(move_count), 0) AS avg_move_count,
       COALESCE(AVG(duration_ms), 0) AS avg_solve_ms
FROM solves
WHERE solver = :solver
`
