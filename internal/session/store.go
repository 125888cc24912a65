package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/ports"
)

const (
	assessmentFile = "assessment.json"
	summaryFile    = "summary.json"
)

// Store persists assessments as per-run directories on disk. Each run gets
// runs/<run_id>/ holding the full assessment document plus a small summary
// used for listing without parsing the whole artifact. It satisfies
// RunLedgerPort so the CLI works without a database.
type Store struct {
	baseDir string
	logger  *internal.Logger
}

// NewStore creates a filesystem run store rooted at baseDir.
func NewStore(baseDir string, logger *internal.Logger) (*Store, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create runs directory %s: %w", baseDir, err)
	}
	return &Store{baseDir: baseDir, logger: logger}, nil
}

// BaseDir returns the store's root directory.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// RunDir returns the directory for one run.
func (s *Store) RunDir(runID core.RunID) string {
	return filepath.Join(s.baseDir, string(runID))
}

// SaveAssessment writes the assessment and its summary row into the run's
// directory. Runs are append-only; an existing directory for the same id is
// overwritten only by an identical replay.
func (s *Store) SaveAssessment(ctx context.Context, assessment *result.Assessment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	baseline := assessment.Baseline
	dir := s.RunDir(baseline.RunID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create run directory %s: %w", dir, err)
	}

	if err := writeJSON(filepath.Join(dir, assessmentFile), assessment); err != nil {
		return err
	}

	if err := s.writeStageBlocks(dir, baseline); err != nil {
		return err
	}

	summary := ports.RunSummary{
		RunID:        baseline.RunID,
		ScenarioName: baseline.ScenarioName,
		Fingerprint:  baseline.Fingerprint,
		Seed:         baseline.Seed,
		CreatedAt:    baseline.CreatedAt,
	}
	if top, ok := baseline.PrimaryTopEvent(); ok {
		summary.TopEvent = top.Analytic
	}
	if err := writeJSON(filepath.Join(dir, summaryFile), summary); err != nil {
		return err
	}

	s.logger.Info("run %s saved to %s", baseline.RunID, dir)
	return nil
}

// writeStageBlocks writes each stage's snapshot as its own small JSON file,
// so a reviewer can diff one stage across runs without parsing the full
// assessment document.
func (s *Store) writeStageBlocks(dir string, baseline *result.PipelineResult) error {
	blockDir := filepath.Join(dir, "stages")
	if err := os.MkdirAll(blockDir, 0o755); err != nil {
		return fmt.Errorf("failed to create stage directory %s: %w", blockDir, err)
	}

	blocks := map[string]interface{}{
		"scored.json":     baseline.Scored,
		"posterior.json":  baseline.Posterior,
		"adjusted.json":   baseline.Adjusted,
		"final.json":      baseline.Final,
		"posteriors.json": baseline.Posteriors,
		"cascade.json":    baseline.Cascade,
	}
	for name, block := range blocks {
		if err := writeJSON(filepath.Join(blockDir, name), block); err != nil {
			return err
		}
	}
	return nil
}

// WriteArtifact stores an extra named file (reports, exports) next to the
// run's assessment.
func (s *Store) WriteArtifact(runID core.RunID, name string, data []byte) (string, error) {
	dir := s.RunDir(runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create run directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact %s: %w", path, err)
	}
	return path, nil
}

// GetAssessment loads a stored assessment by run id.
func (s *Store) GetAssessment(ctx context.Context, runID core.RunID) (*result.Assessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.RunDir(runID), assessmentFile))
	if os.IsNotExist(err) {
		return nil, core.NewRunNotFoundError(runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read assessment for run %s: %w", runID, err)
	}

	var assessment result.Assessment
	if err := json.Unmarshal(data, &assessment); err != nil {
		return nil, fmt.Errorf("failed to parse assessment for run %s: %w", runID, err)
	}
	return &assessment, nil
}

// ListRuns reads every run's summary row, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]ports.RunSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read runs directory %s: %w", s.baseDir, err)
	}

	var summaries []ports.RunSummary
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), summaryFile))
		if err != nil {
			// Partial or foreign directories are skipped, not fatal.
			s.logger.Debug("skipping run directory %s: %v", entry.Name(), err)
			continue
		}
		var summary ports.RunSummary
		if err := json.Unmarshal(data, &summary); err != nil {
			s.logger.Warn("malformed summary in %s: %v", entry.Name(), err)
			continue
		}
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.Time().After(summaries[j].CreatedAt.Time())
	})

	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
