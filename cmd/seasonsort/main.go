package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Nomadcxx/seasonsort/internal/config"
	"github.com/Nomadcxx/seasonsort/internal/database"
	"github.com/Nomadcxx/seasonsort/internal/logging"
	"github.com/Nomadcxx/seasonsort/internal/ui"
	"github.com/spf13/cobra"
)

var (
	version = "dev" // Set by build flags: -ldflags="-X main.version=1.0.0"
	cfgFile string
	dryRun  bool
	verbose bool
	noColor bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		ui.ErrorMsg(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "seasonsort",
		Short: "Rename TV episodes into per-season folders",
		Long: `seasonsort renames episodic video files to Show_S01E02[_Title].ext and
files them into S01, S02, ... folders.

Features:
  - Season/episode detection from names like s1e2, S01E02 or 1x02
  - Optional episode titles scraped from a wiki episode list
  - Watch mode that sorts new downloads as they arrive
  - Audit history of every rename`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				ui.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/seasonsort/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "preview changes without renaming files")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newRenameCmd())
	rootCmd.AddCommand(newScrapeCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "seasonsort %s\n", version)
		},
	}
}

// loadConfig reads --config when given, otherwise the default location.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFile(cfgFile)
	}
	return config.Load()
}

// newLogger builds the command logger. Console output goes to w; -v lowers
// the level to debug.
func newLogger(cfg *config.Config, w io.Writer) (*logging.Logger, error) {
	lc := cfg.Logging.ToLogging()
	if verbose {
		lc.Level = "debug"
	}
	return logging.New(lc, w)
}

// openHistory opens the audit database, or returns nil when history is
// disabled.
func openHistory(cfg *config.Config) (*database.HistoryDB, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	path, err := cfg.HistoryPath()
	if err != nil {
		return nil, err
	}
	return database.OpenPath(path)
}
