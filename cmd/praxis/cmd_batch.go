package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/adapters/scenariojson"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/app"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal/engine"
)

var batchFlags engineFlags
var batchWorkers int

var batchCmd = &cobra.Command{
	Use:   "batch <scenario.json>...",
	Short: "Assess several scenario files concurrently",
	Long: `Assesses every given scenario file. Scenarios are independent and run
concurrently up to --workers; a failing scenario is reported without
aborting the rest of the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	addEngineFlags(batchCmd, &batchFlags)
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 4, "concurrent scenario limit")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ledger, store, err := buildLedger(cfg, &batchFlags)
	if err != nil {
		return err
	}

	pipeline := engine.New(engineConfig(cfg, &batchFlags))
	service := app.NewAssessmentService(pipeline, ledger, logger)
	batch := app.NewBatchService(scenariojson.NewLoader(), service, logger, batchWorkers)

	items, err := batch.Run(cmd.Context(), args, assessmentOptions(&batchFlags))
	if err != nil {
		return err
	}

	failures := 0
	for _, item := range items {
		if item.Err != nil {
			failures++
			fmt.Printf("FAIL %s: %v\n", item.Path, item.Err)
			continue
		}
		baseline := item.Assessment.Baseline
		top := 0.0
		if primary, ok := baseline.PrimaryTopEvent(); ok {
			top = primary.Analytic
		}
		fmt.Printf("OK   %s: run %s, top event %.5f\n", item.Path, baseline.RunID, top)

		if err := writeReports(store, cfg, &batchFlags, item.Assessment); err != nil {
			return err
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failures, len(items))
	}
	return nil
}
