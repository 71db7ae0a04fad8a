package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var suggestProfileOnly bool

var suggestCmd = &cobra.Command{
	Use:   "suggest <company-id>",
	Short: "Mine hiring demand and suggest proactive candidates",
	Long:  "Builds a demand profile from the company's recent postings and scores the candidate pool against it, persisting the matches as proactive recommendations.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

func init() {
	suggestCmd.Flags().BoolVar(&suggestProfileOnly, "profile-only", false, "Print the demand profile without scoring candidates")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	companyID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid company id %q: %w", args[0], err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	miner, err := a.miningService()
	if err != nil {
		return err
	}

	if suggestProfileOnly {
		profile, err := miner.DemandProfile(ctx, companyID)
		if err != nil {
			return err
		}
		return json.NewEncoder(os.Stdout).Encode(profile)
	}

	profile, suggestions, err := miner.SuggestCandidates(ctx, companyID)
	if err != nil {
		return err
	}

	if a.cfg.Verbose {
		a.printer.PrintSuggestions(suggestions)
		return nil
	}
	return json.NewEncoder(os.Stdout).Encode(map[string]any{
		"demand_profile": profile,
		"suggestions":    suggestions,
	})
}
