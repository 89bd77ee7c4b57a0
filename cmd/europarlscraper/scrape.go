package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"EuroparlScraper/internal/app"
	"EuroparlScraper/internal/config"
	"EuroparlScraper/internal/logging"
)

type scrapeFlags struct {
	configPath string
	archive    string
	startURL   string
	dbPath     string
	noPublish  bool
}

// NewScrapeCmd creates the scrape command: walk the configured archives
// and publish the datasets.
func NewScrapeCmd() *cobra.Command {
	flags := &scrapeFlags{}

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Walk the configured archives and publish the datasets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScrape(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "path to the YAML config (defaults to $"+config.ConfigPathEnv+")")
	cmd.Flags().StringVar(&flags.archive, "archive", "", "walk only the named archive")
	cmd.Flags().StringVar(&flags.startURL, "start-url", "", "override the start URL (single-archive runs only)")
	cmd.Flags().StringVar(&flags.dbPath, "db", "", "override the record database path")
	cmd.Flags().BoolVar(&flags.noPublish, "no-publish", false, "skip the publish step, keep records locally")

	return cmd
}

func runScrape(cmd *cobra.Command, flags *scrapeFlags) error {
	cfg := config.Load(flags.configPath)

	if flags.archive != "" {
		selected := cfg.Archives[:0]
		for _, arc := range cfg.Archives {
			if arc.Name == flags.archive {
				selected = append(selected, arc)
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("no archive named %q in configuration", flags.archive)
		}
		cfg.Archives = selected
	}

	if flags.startURL != "" {
		if len(cfg.Archives) != 1 {
			return fmt.Errorf("--start-url requires exactly one archive, have %d", len(cfg.Archives))
		}
		cfg.Archives[0].StartURL = flags.startURL
	}

	if flags.dbPath != "" {
		cfg.Database.Path = flags.dbPath
	}

	if flags.noPublish {
		cfg.Hub.Token = ""
	}

	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(cfg, logger)
	if err != nil {
		return err
	}

	return application.Run(cmd.Context())
}
