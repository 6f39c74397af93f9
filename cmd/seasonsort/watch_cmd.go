package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Nomadcxx/seasonsort/internal/logging"
	"github.com/Nomadcxx/seasonsort/internal/naming"
	"github.com/Nomadcxx/seasonsort/internal/organizer"
	"github.com/Nomadcxx/seasonsort/internal/paths"
	"github.com/Nomadcxx/seasonsort/internal/ui"
	"github.com/Nomadcxx/seasonsort/internal/watcher"
	"github.com/spf13/cobra"
)

// passHandler runs one rename pass for every settled batch of events.
type passHandler struct {
	session *organizer.Session
	logger  *logging.Logger
	out     io.Writer
}

// A nil batch forces a pass. Events for files that already carry their
// canonical name come from the previous pass and are dropped.
func (h *passHandler) HandleBatch(ctx context.Context, events []watcher.FileEvent) error {
	if events != nil {
		events = h.newArrivals(events)
		if len(events) == 0 {
			return nil
		}
		h.logger.Info("cli", "New files detected", logging.F("count", len(events)))
	}

	report, err := h.session.Process(ctx)
	if report != nil && (err != nil || report.Changed() || events == nil) {
		printReport(h.out, report)
	}
	return err
}

func (h *passHandler) newArrivals(events []watcher.FileEvent) []watcher.FileEvent {
	var out []watcher.FileEvent
	for _, e := range events {
		if h.session.IsCanonical(filepath.Base(e.Path)) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func newWatchCmd() *cobra.Command {
	var show string
	var titlesPath string
	var settle time.Duration

	cmd := &cobra.Command{
		Use:   "watch <directory>",
		Short: "Watch a directory and sort new episodes as they arrive",
		Long: `Run one rename pass, then watch the directory and run another pass
whenever new video files settle in it. Stop with Ctrl+C.

Examples:
  seasonsort watch ~/Downloads/Fringe --show Fringe
  seasonsort watch . --show Fringe --titles wiki_data/fringe.json --settle 10s`,
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
			if settle <= 0 {
				settle = cfg.Watch.Settle()
			}

			// long-running sessions keep a log file even when none is configured
			if cfg.Logging.File == "" {
				if logPath, err := paths.LogPath(); err == nil {
					cfg.Logging.File = logPath
				}
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
					logger.Warn("cli", "History disabled for this session", logging.F("error", err))
				} else if history != nil {
					defer history.Close()
					recorder = history
				}
			}

			session, err := newSession(cfg, args[0], settings, logger, recorder)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(runContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			handler := &passHandler{session: session, logger: logger, out: out}
			if err := handler.HandleBatch(ctx, nil); err != nil {
				return err
			}

			w, err := watcher.NewWatcher(handler,
				watcher.WithSettle(settle),
				watcher.WithFilter(naming.IsVideoFile),
				watcher.WithLogger(logger))
			if err != nil {
				return err
			}
			defer w.Close()

			if err := w.Watch(session.Dir()); err != nil {
				return err
			}

			ui.InfoMsg(out, "Watching %s (Ctrl+C to stop)", ui.Path(session.Dir()))
			if err := w.Run(ctx); err != nil {
				return err
			}

			fmt.Fprintln(out)
			ui.InfoMsg(out, "Stopped; %d files renamed this session", len(session.Processed()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&show, "show", "s", "", "show name used as the filename prefix")
	cmd.Flags().StringVarP(&titlesPath, "titles", "t", "", "JSON title file; embeds episode titles in filenames")
	cmd.Flags().DurationVar(&settle, "settle", 0, "quiet period before a pass runs (default: watch.settle_seconds)")

	return cmd
}
