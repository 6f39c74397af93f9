package main

import (
	"fmt"
	"os"

	"github.com/Nomadcxx/seasonsort/internal/config"
	"github.com/Nomadcxx/seasonsort/internal/paths"
	"github.com/Nomadcxx/seasonsort/internal/ui"
	"github.com/spf13/cobra"
)

// configFilePath returns --config when given, otherwise the default path.
func configFilePath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return paths.ConfigPath()
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage seasonsort configuration",
		Long: `Commands for managing seasonsort configuration.

The config file is stored at: ~/.config/seasonsort/config.toml
Set SEASONSORT_HOME to use a different directory.

Examples:
  seasonsort config init              # Create default config file
  seasonsort config show              # Display current configuration
  seasonsort config path              # Show config file path`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}

			if err := config.DefaultConfig().Save(path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			out := cmd.OutOrStdout()
			ui.SuccessMsg(out, "Created config file: %s", path)
			fmt.Fprintln(out, "\nNext steps:")
			fmt.Fprintln(out, "  1. Set rename.show_name or pass --show")
			fmt.Fprintln(out, "  2. Run 'seasonsort scrape <url> --name <show>' to fetch episode titles")
			fmt.Fprintln(out, "  3. Run 'seasonsort config show' to review settings")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing config file")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			out := cmd.OutOrStdout()
			if _, err := os.Stat(path); err != nil {
				ui.WarningMsg(out, "No config file at %s, showing defaults", path)
			} else {
				fmt.Fprintf(out, "Config file: %s\n", path)
			}

			ui.Section(out, "Rename")
			fmt.Fprintf(out, "Show name:    %s\n", orNone(cfg.Rename.ShowName))
			fmt.Fprintf(out, "Embed titles: %v\n", cfg.Rename.EmbedTitles)
			fmt.Fprintf(out, "Titles file:  %s\n", orNone(cfg.Rename.TitlesFile))
			fmt.Fprintf(out, "Dry run:      %v\n", cfg.Rename.DryRun)

			ui.Section(out, "Scrape")
			fmt.Fprintf(out, "Output dir: %s\n", cfg.Scrape.OutputDir)
			fmt.Fprintf(out, "Timeout:    %s\n", cfg.Scrape.Timeout())

			ui.Section(out, "Watch")
			fmt.Fprintf(out, "Settle: %s\n", cfg.Watch.Settle())

			ui.Section(out, "History")
			fmt.Fprintf(out, "Enabled: %v\n", cfg.History.Enabled)
			if historyPath, err := cfg.HistoryPath(); err == nil {
				fmt.Fprintf(out, "Path:    %s\n", historyPath)
			}

			ui.Section(out, "Logging")
			fmt.Fprintf(out, "Level: %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "File:  %s\n", orNone(cfg.Logging.File))
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
