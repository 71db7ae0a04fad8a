package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <job-id> <candidate-id>...",
	Short: "Compare 2-5 candidates against one job posting",
	Args:  cobra.RangeArgs(3, 6),
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	jobID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid job id %q: %w", args[0], err)
	}

	candidateIDs := make([]uuid.UUID, 0, len(args)-1)
	for _, raw := range args[1:] {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid candidate id %q: %w", raw, err)
		}
		candidateIDs = append(candidateIDs, id)
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

	cmp, err := ranker.Compare(ctx, jobID, candidateIDs)
	if err != nil {
		return err
	}

	if a.cfg.Verbose {
		a.printer.PrintComparison(cmp)
		return nil
	}
	return json.NewEncoder(os.Stdout).Encode(cmp)
}
