package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/talentbridge/matchengine/internal/ranking"
)

var (
	rankMinScore  int
	rankLimit     int
	rankNoPersist bool
)

var rankCmd = &cobra.Command{
	Use:   "rank <job-id>",
	Short: "Rank the candidate pool for a job posting",
	Args:  cobra.ExactArgs(1),
	RunE:  runRank,
}

func init() {
	rankCmd.Flags().IntVar(&rankMinScore, "min-score", 0, "Score floor (0 uses the default)")
	rankCmd.Flags().IntVar(&rankLimit, "limit", 0, "Result cap (0 uses the default)")
	rankCmd.Flags().BoolVar(&rankNoPersist, "no-persist", false, "Skip writing recommendations")
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	jobID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid job id %q: %w", args[0], err)
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

	opts := ranking.Options{
		MinScore: rankMinScore,
		Limit:    rankLimit,
		Persist:  !rankNoPersist,
	}
	if opts.MinScore == 0 {
		opts.MinScore = a.cfg.MinScore
	}
	if opts.Limit == 0 {
		opts.Limit = a.cfg.MaxResults
	}
	if a.cfg.ModelVersion != "" {
		opts.ModelVersion = a.cfg.ModelVersion
	}

	ranked, err := ranker.RankCandidates(ctx, jobID, opts)
	if err != nil {
		return err
	}

	if a.cfg.Verbose {
		a.printer.PrintRankedCandidates(ranked)
		return nil
	}
	return json.NewEncoder(os.Stdout).Encode(ranked)
}
