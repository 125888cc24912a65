package ports

import (
	"context"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
)

// RunWriterPort provides append-only write access to finished assessments.
// This is the only way results are persisted; the core never reads back its
// own output mid-run.
type RunWriterPort interface {
	SaveAssessment(ctx context.Context, assessment *result.Assessment) error
}

// RunReaderPort provides read-only access for the reporting and governance
// consumers. They read results purely as data and never call back into the
// pipeline.
type RunReaderPort interface {
	GetAssessment(ctx context.Context, runID core.RunID) (*result.Assessment, error)
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
}

// RunLedgerPort combines read and write access.
type RunLedgerPort interface {
	RunWriterPort
	RunReaderPort
}

// RunSummary is the listing row for a stored run.
type RunSummary struct {
	RunID        core.RunID     `json:"run_id"`
	ScenarioName string         `json:"scenario_name"`
	Fingerprint  core.Hash      `json:"fingerprint"`
	Seed         int64          `json:"seed"`
	TopEvent     float64        `json:"top_event"`
	CreatedAt    core.Timestamp `json:"created_at"`
}
