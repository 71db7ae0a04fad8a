package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/talentbridge/matchengine/internal/types"
)

var (
	accuracyItemType   string
	accuracyWindowDays int
	accuracyMaxUsers   int
)

var accuracyCmd = &cobra.Command{
	Use:   "accuracy",
	Short: "Measure recommendation accuracy",
}

var accuracyMeasureCmd = &cobra.Command{
	Use:   "measure <user-id>",
	Short: "Measure one user's recommendation accuracy",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccuracyMeasure,
}

var accuracyTrendCmd = &cobra.Command{
	Use:   "trend <user-id>",
	Short: "Sample one user's accuracy over widening windows",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccuracyTrend,
}

var accuracySystemCmd = &cobra.Command{
	Use:   "system",
	Short: "Aggregate accuracy over the most active users",
	Args:  cobra.NoArgs,
	RunE:  runAccuracySystem,
}

func init() {
	accuracyCmd.PersistentFlags().StringVar(&accuracyItemType, "item-type", types.ItemTypeJob, "Recommendation item type")
	accuracyCmd.PersistentFlags().IntVar(&accuracyWindowDays, "window-days", 0, "Measurement window in days (0 means all time)")
	accuracySystemCmd.Flags().IntVar(&accuracyMaxUsers, "max-users", 0, "User sample cap (0 uses the default)")

	accuracyCmd.AddCommand(accuracyMeasureCmd)
	accuracyCmd.AddCommand(accuracyTrendCmd)
	accuracyCmd.AddCommand(accuracySystemCmd)
	rootCmd.AddCommand(accuracyCmd)
}

func runAccuracyMeasure(cmd *cobra.Command, args []string) error {
	userID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", args[0], err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	window := time.Duration(accuracyWindowDays) * 24 * time.Hour
	m, err := a.accuracyTracker().Measure(ctx, userID, accuracyItemType, window)
	if err != nil {
		return err
	}

	if a.cfg.Verbose {
		a.printer.PrintAccuracy(m)
		return nil
	}
	return json.NewEncoder(os.Stdout).Encode(m)
}

func runAccuracyTrend(cmd *cobra.Command, args []string) error {
	userID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", args[0], err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.accuracyTracker().Trend(ctx, userID, accuracyItemType, nil)
	if err != nil {
		return err
	}

	if a.cfg.Verbose {
		a.printer.PrintTrend(report)
		return nil
	}
	return json.NewEncoder(os.Stdout).Encode(report)
}

func runAccuracySystem(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	window := time.Duration(accuracyWindowDays) * 24 * time.Hour
	sys, err := a.accuracyTracker().System(ctx, accuracyItemType, window, accuracyMaxUsers)
	if err != nil {
		return err
	}
	return json.NewEncoder(os.Stdout).Encode(sys)
}
