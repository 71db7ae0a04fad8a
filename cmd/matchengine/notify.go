package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/talentbridge/matchengine/internal/notify"
)

var (
	notifyMinScore   int
	notifyMaxNotices int
)

var notifyCmd = &cobra.Command{
	Use:   "notify <job-id>",
	Short: "Dispatch match notifications for a job posting",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotify,
}

func init() {
	notifyCmd.Flags().IntVar(&notifyMinScore, "min-score", 0, "Score floor (0 uses the default)")
	notifyCmd.Flags().IntVar(&notifyMaxNotices, "max-notices", 0, "Notification cap (0 uses the default)")
	rootCmd.AddCommand(notifyCmd)
}

func runNotify(cmd *cobra.Command, args []string) error {
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

	matcher, closeBroker, err := a.notifyMatcher()
	if err != nil {
		return err
	}
	defer func() { _ = closeBroker() }()

	results, err := matcher.NotifyMatching(ctx, jobID, notify.Options{
		MinScore:   notifyMinScore,
		MaxNotices: notifyMaxNotices,
	})
	if err != nil {
		return err
	}
	return json.NewEncoder(os.Stdout).Encode(results)
}
