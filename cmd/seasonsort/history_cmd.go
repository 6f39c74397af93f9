package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Nomadcxx/seasonsort/internal/database"
	"github.com/Nomadcxx/seasonsort/internal/ui"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int
	var runs bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent renames",
		Long: `Show the audit trail of renames, newest first.

Examples:
  seasonsort history
  seasonsort history --limit 50
  seasonsort history --runs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return errors.New("--limit must be positive")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errors.New("history is disabled (history.enabled = false)")
			}

			db, err := openHistory(cfg)
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer db.Close()

			if runs {
				return printRuns(cmd, db, limit)
			}
			return printRenames(cmd, db, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "number of entries to show")
	cmd.Flags().BoolVar(&runs, "runs", false, "list runs instead of individual renames")

	return cmd
}

func printRenames(cmd *cobra.Command, db *database.HistoryDB, limit int) error {
	records, err := db.RecentRenames(limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		ui.InfoMsg(out, "No renames recorded yet")
		return nil
	}

	table := ui.NewTable("WHEN", "EPISODE", "FROM", "TO", "SIZE")
	for _, r := range records {
		table.AddRow(
			r.ExecutedAt.Local().Format("2006-01-02 15:04"),
			"S"+r.Season+"E"+r.Episode,
			filepath.Base(r.SourcePath),
			r.TargetPath,
			ui.FormatBytes(r.SizeBytes),
		)
	}
	table.Render(out)
	return nil
}

func printRuns(cmd *cobra.Command, db *database.HistoryDB, limit int) error {
	runs, err := db.RecentRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		ui.InfoMsg(out, "No runs recorded yet")
		return nil
	}

	table := ui.NewTable("STARTED", "SHOW", "DIRECTORY", "RENAMED", "SKIPPED")
	for _, r := range runs {
		renamed := fmt.Sprint(r.Renamed)
		if r.FinishedAt.IsZero() {
			renamed = "incomplete"
		}
		table.AddRow(
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.ShowName,
			r.Directory,
			renamed,
			fmt.Sprint(r.Skipped),
		)
	}
	table.Render(out)
	return nil
}
