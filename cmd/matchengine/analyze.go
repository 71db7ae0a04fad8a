package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <candidate-id> <job-id>",
	Short: "Explain one candidate's strengths and weaknesses for a job",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	candidateID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid candidate id %q: %w", args[0], err)
	}
	jobID, err := uuid.Parse(args[1])
	if err != nil {
		return fmt.Errorf("invalid job id %q: %w", args[1], err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	ranker, err := a.rankingService()
	if err != nil {
		return err
	}

	report, err := ranker.AnalyzeCandidate(ctx, candidateID, jobID)
	if err != nil {
		return err
	}

	if a.cfg.Verbose {
		a.printer.PrintReport(report)
		return nil
	}
	return json.NewEncoder(os.Stdout).Encode(report)
}
