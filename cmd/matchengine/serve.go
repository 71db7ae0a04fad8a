package main

import (
	"github.com/spf13/cobra"

	"github.com/talentbridge/matchengine/internal/server"
)

var flagListenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long:  "Starts the REST API exposing ranking, comparison, analysis, demand mining, notification and accuracy endpoints.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagListenAddr, "listen", "", "Listen address (host:port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	ranker, err := a.rankingService()
	if err != nil {
		return err
	}
	miner, err := a.miningService()
	if err != nil {
		return err
	}
	matcher, closeBroker, err := a.notifyMatcher()
	if err != nil {
		return err
	}
	defer func() { _ = closeBroker() }()

	addr := flagListenAddr
	if addr == "" {
		addr = a.cfg.ListenAddr
	}

	srv := server.New(server.Config{ListenAddr: addr},
		ranker, miner, matcher, a.accuracyTracker(), a.log)
	return srv.Start()
}
