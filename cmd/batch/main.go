package main

import (
	"context"
	"log"

	"rminsights/cmd"

	"github.com/spf13/cobra"
)

var (
	clientIDs     []string
	concurrency   int
	withNarrative bool
)

var rootCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score loan eligibility, deposit trends, rebalancing and risk for clients",
	RunE: func(c *cobra.Command, args []string) error {
		apiHandler, err := cmd.InitializeDependencies()
		if err != nil {
			return err
		}
		defer cmd.CloseDependencies(apiHandler)

		result, err := apiHandler.BatchHandler.Run(context.Background(), clientIDs, concurrency, withNarrative)
		if err != nil {
			return err
		}

		apiHandler.BatchHandler.Log.Infow("batch run complete",
			"processed", result.Processed,
			"failed", result.Failed,
			"duration", result.Duration,
		)
		return nil
	},
}

func main() {
	rootCmd.Flags().StringSliceVar(&clientIDs, "client", nil, "client id to score (repeatable); all clients when omitted")
	rootCmd.Flags().IntVar(&concurrency, "concurrency", 4, "number of clients scored in parallel")
	rootCmd.Flags().BoolVar(&withNarrative, "narrative", false, "generate LLM narratives")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
