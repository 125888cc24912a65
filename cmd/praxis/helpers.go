package main

import (
	"context"
	"fmt"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/adapters/excel"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/adapters/postgres"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/app"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal/config"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal/engine"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal/report"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal/session"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/ports"
)

// engineFlags are the run parameters shared by the run and batch commands.
type engineFlags struct {
	seed        int64
	samples     int
	confidence  float64
	interval    string
	pseudoN     float64
	correlation string
	analytic    bool
	sensitivity bool
	twins       bool
	excelOut    string
	useDB       bool
}

// engineConfig builds the run configuration from environment defaults
// overridden by command-line flags.
func engineConfig(cfg *config.Config, flags *engineFlags) engine.RunConfig {
	run := engine.DefaultConfig()
	run.Seed = cfg.Engine.Seed
	run.PseudoN = cfg.Engine.PseudoN
	run.MonteCarlo.Samples = cfg.Engine.Samples
	run.MonteCarlo.Confidence = cfg.Engine.Confidence
	run.MonteCarlo.Interval = cfg.Engine.Interval

	if flags.seed != 0 {
		run.Seed = flags.seed
	}
	if flags.samples != 0 {
		run.MonteCarlo.Samples = flags.samples
	}
	if flags.confidence != 0 {
		run.MonteCarlo.Confidence = flags.confidence
	}
	if flags.interval != "" {
		run.MonteCarlo.Interval = flags.interval
	}
	if flags.pseudoN != 0 {
		run.PseudoN = flags.pseudoN
	}
	if flags.correlation != "" {
		run.Correlation = flags.correlation
	}
	return run
}

// buildLedger selects the run store: PostgreSQL when requested and
// configured, the filesystem store otherwise. The returned session store is
// always available for report artifacts.
func buildLedger(cfg *config.Config, flags *engineFlags) (ports.RunLedgerPort, *session.Store, error) {
	store, err := session.NewStore(cfg.Paths.RunsDir, logger)
	if err != nil {
		return nil, nil, err
	}

	if flags.useDB {
		dsn := cfg.Database.DSN()
		if dsn == "" {
			return nil, nil, fmt.Errorf("--db requires DATABASE_URL or DB_HOST to be set")
		}
		db, err := postgres.Connect(dsn)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			return nil, nil, err
		}
		return postgres.NewRunRepository(db), store, nil
	}
	return store, store, nil
}

// writeReports renders the markdown report and optional Excel workbook into
// the run's directory.
func writeReports(store *session.Store, cfg *config.Config, flags *engineFlags, assessment *result.Assessment) error {
	runID := assessment.Baseline.RunID

	if cfg.Export.Markdown {
		md, err := report.NewBuilder().Markdown(assessment)
		if err != nil {
			return err
		}
		path, err := store.WriteArtifact(runID, "report.md", md)
		if err != nil {
			return err
		}
		logger.Info("report written to %s", path)
	}

	excelPath := flags.excelOut
	if excelPath == "" {
		excelPath = cfg.Export.ExcelFile
	}
	if excelPath != "" {
		if err := excel.NewReportWriter(excelPath).Write(assessment); err != nil {
			return err
		}
		logger.Info("workbook written to %s", excelPath)
	}
	return nil
}

func assessmentOptions(flags *engineFlags) app.AssessmentOptions {
	return app.AssessmentOptions{
		Sensitivity: flags.sensitivity,
		Twins:       flags.twins,
		Analytic:    flags.analytic,
	}
}
