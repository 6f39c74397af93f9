package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Nomadcxx/seasonsort/internal/titles"
	"github.com/Nomadcxx/seasonsort/internal/ui"
	"github.com/Nomadcxx/seasonsort/internal/wiki"
	"github.com/spf13/cobra"
)

// titlesOutputPath returns DIR/NAME.json.
func titlesOutputPath(dir, name string) string {
	return filepath.Join(dir, name+".json")
}

func newScrapeCmd() *cobra.Command {
	var name string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "scrape <url>",
		Short: "Scrape episode titles from a wiki episode list",
		Long: `Download a wiki "List of ... episodes" page and save its episode titles
as JSON for use with "seasonsort rename --titles".

The file is written to <output-dir>/<name>.json.

Examples:
  seasonsort scrape https://en.wikipedia.org/wiki/List_of_Fringe_episodes --name fringe
  seasonsort scrape <url> --name fringe --output-dir ~/titles`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return errors.New("--name is required")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = cfg.Scrape.OutputDir
			}

			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logger.Close()

			scraper := wiki.NewScraper(
				wiki.WithTimeout(cfg.Scrape.Timeout()),
				wiki.WithUserAgent(cfg.Scrape.UserAgent),
				wiki.WithLogger(logger),
			)

			t, err := scraper.Fetch(runContext(cmd), args[0])
			if err != nil {
				return err
			}
			return saveTitles(cmd, t, titlesOutputPath(outputDir, name))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "base name of the output file (required)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "output directory (default: scrape.output_dir, \"wiki_data\")")

	return cmd
}

func saveTitles(cmd *cobra.Command, t titles.Titles, path string) error {
	if err := t.Save(path); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ui.SuccessMsg(out, "Saved episode list to %s", path)
	fmt.Fprintf(out, "  %d seasons, %d episodes\n", len(t.Seasons()), t.EpisodeCount())
	return nil
}
