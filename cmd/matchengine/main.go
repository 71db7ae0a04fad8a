// Package main provides the entry point for the match engine CLI and
// HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagVerbose bool
	flagLogJSON bool
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "matchengine",
	Short: "Candidate/job matching engine",
	Long:  "Match engine ranks candidates for job postings, explains every score, mines proactive suggestions from hiring demand and measures how accurate past recommendations were.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Print formatted result boxes")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Emit JSON logs")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
