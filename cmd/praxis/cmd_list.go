package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listLimit int
var listUseDB bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored assessment runs",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "maximum rows to show")
	listCmd.Flags().BoolVar(&listUseDB, "db", false, "read from PostgreSQL (DATABASE_URL)")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ledger, _, err := buildLedger(cfg, &engineFlags{useDB: listUseDB})
	if err != nil {
		return err
	}

	summaries, err := ledger.ListRuns(cmd.Context(), listLimit)
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	for _, s := range summaries {
		fmt.Printf("%s  %-20s  top %.5f  seed %d  %s\n",
			s.RunID, s.ScenarioName, s.TopEvent, s.Seed,
			s.CreatedAt.Time().Format("2006-01-02 15:04:05"))
	}
	return nil
}
