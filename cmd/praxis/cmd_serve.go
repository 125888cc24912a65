package main

import (
	"github.com/spf13/cobra"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal/api"
)

var serveUseDB bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored assessment runs over HTTP",
	Long: `Starts the read-only results API: run listings, full assessment
documents and rendered HTML reports. The server never triggers new runs;
it reads what the run and batch commands stored.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveUseDB, "db", false, "read from PostgreSQL (DATABASE_URL)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ledger, _, err := buildLedger(cfg, &engineFlags{useDB: serveUseDB})
	if err != nil {
		return err
	}

	server := api.NewServer(ledger, logger)
	return server.ListenAndServe(cfg.Server.Port)
}
