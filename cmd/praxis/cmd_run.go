package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/adapters/scenariojson"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/app"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal/engine"
)

var runFlags engineFlags

var runCmd = &cobra.Command{
	Use:   "run <scenario.json>",
	Short: "Assess one scenario file",
	Long: `Runs the full assessment pipeline on one scenario file: scoring,
Bayesian updating, common-cause adjustment, cascade propagation and
fault-tree evaluation, followed by the sensitivity sweep and any declared
adversarial twins.

A sampled Monte Carlo pass requires --samples (or ENGINE_SAMPLES); use
--analytic to skip sampling entirely.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	addEngineFlags(runCmd, &runFlags)
}

func addEngineFlags(cmd *cobra.Command, flags *engineFlags) {
	cmd.Flags().Int64Var(&flags.seed, "seed", 0, "base seed for all random streams")
	cmd.Flags().IntVar(&flags.samples, "samples", 0, "Monte Carlo trial count (required unless --analytic)")
	cmd.Flags().Float64Var(&flags.confidence, "confidence", 0, "confidence level for sampled intervals")
	cmd.Flags().StringVar(&flags.interval, "interval", "", "interval method: wald, wilson or clopper_pearson")
	cmd.Flags().Float64Var(&flags.pseudoN, "pseudo-n", 0, "pseudo sample size for priors without evidence")
	cmd.Flags().StringVar(&flags.correlation, "correlation", "", "common-cause model: shared_term or beta_factor")
	cmd.Flags().BoolVar(&flags.analytic, "analytic", false, "skip the Monte Carlo pass")
	cmd.Flags().BoolVar(&flags.sensitivity, "sensitivity", true, "run the one-at-a-time sensitivity sweep")
	cmd.Flags().BoolVar(&flags.twins, "twins", true, "evaluate declared adversarial twins")
	cmd.Flags().StringVar(&flags.excelOut, "excel", "", "also export an Excel workbook to this path")
	cmd.Flags().BoolVar(&flags.useDB, "db", false, "persist the run to PostgreSQL (DATABASE_URL)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ledger, store, err := buildLedger(cfg, &runFlags)
	if err != nil {
		return err
	}

	model, err := scenariojson.NewLoader().Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	pipeline := engine.New(engineConfig(cfg, &runFlags))
	service := app.NewAssessmentService(pipeline, ledger, logger)

	assessment, err := service.Assess(cmd.Context(), model, assessmentOptions(&runFlags))
	if err != nil {
		return err
	}

	if err := writeReports(store, cfg, &runFlags, assessment); err != nil {
		return err
	}

	baseline := assessment.Baseline
	fmt.Printf("run %s complete\n", baseline.RunID)
	for _, top := range baseline.TopEvents {
		if mc := top.MonteCarlo; mc != nil {
			fmt.Printf("  %s: analytic %.5f, sampled %.5f [%.5f, %.5f]\n",
				top.ID, top.Analytic, mc.Mean, mc.Interval.Low, mc.Interval.High)
		} else {
			fmt.Printf("  %s: analytic %.5f\n", top.ID, top.Analytic)
		}
	}
	return nil
}
