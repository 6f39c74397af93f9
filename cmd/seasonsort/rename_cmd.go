package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/Nomadcxx/seasonsort/internal/config"
	"github.com/Nomadcxx/seasonsort/internal/logging"
	"github.com/Nomadcxx/seasonsort/internal/organizer"
	"github.com/Nomadcxx/seasonsort/internal/ui"
	"github.com/spf13/cobra"
)

// renameSettings is the merge of command-line flags over the [rename]
// config section.
type renameSettings struct {
	Show       string
	TitlesPath string
	Mode       organizer.TitleMode
	DryRun     bool
}

func resolveRenameSettings(cfg *config.Config, show, titlesPath string) (renameSettings, error) {
	s := renameSettings{
		Show:   show,
		DryRun: dryRun || cfg.Rename.DryRun,
		Mode:   organizer.TitlesDisabled,
	}
	if s.Show == "" {
		s.Show = cfg.Rename.ShowName
	}
	if s.Show == "" {
		return s, errors.New("no show name given (use --show or set rename.show_name in config)")
	}

	switch {
	case titlesPath != "":
		s.TitlesPath = titlesPath
		s.Mode = organizer.TitlesEmbedded
	case cfg.Rename.EmbedTitles:
		if cfg.Rename.TitlesFile == "" {
			return s, errors.New("rename.embed_titles is set but rename.titles_file is empty")
		}
		s.TitlesPath = cfg.Rename.TitlesFile
		s.Mode = organizer.TitlesEmbedded
	}
	return s, nil
}

// newSession loads titles before anything touches the directory, so a bad
// title file stops the command with every file still in place.
func newSession(cfg *config.Config, dir string, s renameSettings, logger *logging.Logger, recorder organizer.Recorder) (*organizer.Session, error) {
	t, err := organizer.LoadTitles(s.Mode, s.TitlesPath)
	if err != nil {
		return nil, err
	}
	dirMode, err := cfg.Permissions.ParseDirMode()
	if err != nil {
		return nil, err
	}

	opts := []organizer.Option{
		organizer.WithDryRun(s.DryRun),
		organizer.WithLogger(logger),
		organizer.WithDirMode(dirMode),
	}
	if s.Mode == organizer.TitlesEmbedded {
		opts = append(opts, organizer.WithTitles(t))
	}
	if recorder != nil {
		opts = append(opts, organizer.WithRecorder(recorder))
	}
	return organizer.NewSession(dir, s.Show, opts...)
}

func newRenameCmd() *cobra.Command {
	var show string
	var titlesPath string

	cmd := &cobra.Command{
		Use:   "rename <directory>",
		Short: "Rename episodes and sort them into season folders",
		Long: `Rename every video file in a directory to Show_S01E02[_Title].ext and
move it into its season folder (S01, S02, ...).

Files without a recognizable season/episode are left alone. When the
directory itself is a season folder (S01), files are renamed in place.

Examples:
  seasonsort rename ~/Downloads/Fringe --show Fringe
  seasonsort rename . --show Fringe --titles wiki_data/fringe.json
  seasonsort rename . --show Fringe -n  # dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			settings, err := resolveRenameSettings(cfg, show, titlesPath)
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logger.Close()

			var recorder organizer.Recorder
			if !settings.DryRun {
				history, err := openHistory(cfg)
				if err != nil {
					logger.Warn("cli", "History disabled for this run", logging.F("error", err))
				} else if history != nil {
					defer history.Close()
					recorder = history
				}
			}

			session, err := newSession(cfg, args[0], settings, logger, recorder)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if settings.DryRun {
				ui.InfoMsg(out, "Dry run: no files will be changed")
			}

			report, err := session.Process(runContext(cmd))
			if report != nil {
				printReport(out, report)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&show, "show", "s", "", "show name used as the filename prefix")
	cmd.Flags().StringVarP(&titlesPath, "titles", "t", "", "JSON title file; embeds episode titles in filenames")

	return cmd
}

// printReport writes one line per renamed, planned, or unidentified file,
// followed by a summary.
func printReport(w io.Writer, report *organizer.Report) {
	for _, o := range report.Outcomes {
		switch o.State {
		case organizer.StateRelocated, organizer.StateAlreadyInFolder:
			ui.SuccessMsg(w, "%s → %s %s", o.Descriptor.Original, ui.Path(relPath(report.Dir, o.FinalPath)),
				ui.Dim("("+ui.FormatBytes(o.Size)+")"))
		case organizer.StatePlanned:
			ui.InfoMsg(w, "%s → %s", o.Descriptor.Original, ui.Path(relPath(report.Dir, o.FinalPath)))
		case organizer.StateFailed:
			ui.ErrorMsg(w, "%s", filepath.Base(o.SourcePath))
		case organizer.StateSkippedNoIdentifier:
			ui.WarningMsg(w, "Skipping %s (no season/episode found)", o.Descriptor.Original)
		}
	}

	ui.Section(w, "Summary")
	if report.DryRun {
		fmt.Fprintf(w, "  Planned:    %d\n", report.Count(organizer.StatePlanned))
	} else {
		fmt.Fprintf(w, "  Renamed:    %d\n", report.Renamed())
	}
	fmt.Fprintf(w, "  Skipped:    %d\n", report.Skipped())
	fmt.Fprintf(w, "  Total size: %s\n", ui.FormatBytes(report.TotalBytes()))
}

func relPath(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return rel
	}
	return path
}

// runContext returns the command context, or Background when the command
// is executed without one.
func runContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
