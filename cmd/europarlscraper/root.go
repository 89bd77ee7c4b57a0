// Package main provides the entry point for the europarlscraper CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the scraper.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "europarlscraper",
		Short: "Scrape European Parliament document archives into datasets",
		Long: `europarlscraper follows the "next" links of a European Parliament
document archive (verbatim reports or adopted texts), extracts the cleaned
text body of every stop and publishes the accumulated records as a tabular
dataset to a remote dataset repository.

Credentials for the publish step come from the environment (HF_TOKEN,
HF_USERNAME); without a token the walk still runs and the records are kept
in the local database only.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewScrapeCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
