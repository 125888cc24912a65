package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal/errors"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/ports"
)

// Connect opens a PostgreSQL connection pool.
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	return db, nil
}

// runRepository implements the RunLedgerPort interface
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB) ports.RunLedgerPort {
	return &runRepository{db: db}
}

const schema = `CREATE TABLE IF NOT EXISTS assessment_runs (
	run_id        TEXT PRIMARY KEY,
	scenario_name TEXT NOT NULL,
	fingerprint   TEXT NOT NULL,
	seed          BIGINT NOT NULL,
	top_event     DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL,
	payload       JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assessment_runs_created_at ON assessment_runs (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_assessment_runs_fingerprint ON assessment_runs (fingerprint);`

// EnsureSchema creates the runs table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to create assessment_runs schema")
	}
	return nil
}

// SaveAssessment inserts a finished assessment. Runs are append-only; a
// duplicate run id is a caller bug and surfaces as a database error.
func (r *runRepository) SaveAssessment(ctx context.Context, assessment *result.Assessment) error {
	payload, err := json.Marshal(assessment)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	baseline := assessment.Baseline
	topEvent := 0.0
	if top, ok := baseline.PrimaryTopEvent(); ok {
		topEvent = top.Analytic
	}

	query := `INSERT INTO assessment_runs (
		run_id, scenario_name, fingerprint, seed, top_event, created_at, payload
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		string(baseline.RunID), baseline.ScenarioName, string(baseline.Fingerprint),
		baseline.Seed, topEvent, baseline.CreatedAt.Time(), payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save assessment %s: %w", baseline.RunID, err)
	}
	return nil
}

// GetAssessment retrieves a stored assessment by run id.
func (r *runRepository) GetAssessment(ctx context.Context, runID core.RunID) (*result.Assessment, error) {
	var payload []byte
	query := `SELECT payload FROM assessment_runs WHERE run_id = $1`

	err := r.db.QueryRowxContext(ctx, query, string(runID)).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, core.NewRunNotFoundError(runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment %s: %w", runID, err)
	}

	var assessment result.Assessment
	if err := json.Unmarshal(payload, &assessment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assessment %s: %w", runID, err)
	}
	return &assessment, nil
}

// ListRuns returns run summaries, newest first.
func (r *runRepository) ListRuns(ctx context.Context, limit int) ([]ports.RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT run_id, scenario_name, fingerprint, seed, top_event, created_at
	FROM assessment_runs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var summaries []ports.RunSummary
	for rows.Next() {
		var row struct {
			RunID        string    `db:"run_id"`
			ScenarioName string    `db:"scenario_name"`
			Fingerprint  string    `db:"fingerprint"`
			Seed         int64     `db:"seed"`
			TopEvent     float64   `db:"top_event"`
			CreatedAt    sql.NullTime `db:"created_at"`
		}
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("failed to scan run summary: %w", err)
		}

		summary := ports.RunSummary{
			RunID:        core.RunID(row.RunID),
			ScenarioName: row.ScenarioName,
			Fingerprint:  core.Hash(row.Fingerprint),
			Seed:         row.Seed,
			TopEvent:     row.TopEvent,
		}
		if row.CreatedAt.Valid {
			summary.CreatedAt = core.NewTimestamp(row.CreatedAt.Time)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate run summaries: %w", err)
	}
	return summaries, nil
}
