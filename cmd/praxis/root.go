package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

var logger = internal.DefaultLogger

var rootCmd = &cobra.Command{
	Use:   "praxis",
	Short: "Probabilistic risk assessment for declared failure scenarios",
	Long: "Praxis scores declared risk scenarios through Bayesian updating,\n" +
		"common-cause coupling, cascade propagation and fault-tree evaluation,\n" +
		"and reports top-event probabilities with sensitivity and twin analyses.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

// loadConfig reads .env when present, then the environment.
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Debug("no .env file loaded: %v", err)
	}
	return config.Load()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
