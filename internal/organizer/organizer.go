// Package organizer renames the episodes of one directory and files them
// into per-season folders.
//
// Each directory entry passes through fixed gates: regular file, video
// extension, season/episode identifier. Entries that clear every gate are
// renamed in place to their canonical name and then moved into S{season},
// unless the directory itself already is a season folder. The first
// filesystem failure stops the pass and is returned as a
// *transfer.OpError; nothing is retried or rolled back.
package organizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Nomadcxx/seasonsort/internal/database"
	"github.com/Nomadcxx/seasonsort/internal/logging"
	"github.com/Nomadcxx/seasonsort/internal/naming"
	"github.com/Nomadcxx/seasonsort/internal/titles"
	"github.com/Nomadcxx/seasonsort/internal/transfer"
	"github.com/google/uuid"
)

const component = "organizer"

// TitleMode selects whether episode titles are embedded in filenames.
type TitleMode int

const (
	// TitlesDisabled never loads or consults a title mapping.
	TitlesDisabled TitleMode = iota
	// TitlesEmbedded requires a title mapping and appends known titles.
	TitlesEmbedded
)

// LoadTitles resolves the title mapping for mode. With TitlesDisabled the
// file is never read and nil is returned. With TitlesEmbedded a missing or
// malformed file is an error, so callers can stop before touching media.
func LoadTitles(mode TitleMode, path string) (titles.Titles, error) {
	if mode == TitlesDisabled {
		return nil, nil
	}
	if path == "" {
		return nil, errors.New("episode titles requested but no title file given")
	}
	return titles.Load(path)
}

// Recorder receives the audit trail of a pass. *database.HistoryDB
// implements it.
type Recorder interface {
	StartRun(run database.Run) error
	RecordRename(rec database.RenameRecord) error
	FinishRun(id string, renamed, skipped int) error
}

// Session is one invocation of the renamer over one directory.
type Session struct {
	dir      string
	show     string
	mode     TitleMode
	titles   titles.Titles
	dryRun   bool
	logger   *logging.Logger
	recorder Recorder
	mover    *transfer.Mover

	processed    []string
	processedSet map[string]struct{}
}

// Option configures a Session.
type Option func(*Session)

// WithTitles embeds titles from t into target filenames.
func WithTitles(t titles.Titles) Option {
	return func(s *Session) {
		s.mode = TitlesEmbedded
		s.titles = t
	}
}

// WithDryRun computes outcomes without touching the filesystem.
func WithDryRun(dryRun bool) Option {
	return func(s *Session) {
		s.dryRun = dryRun
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder records every run and rename.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithDirMode sets the mode of created season folders.
func WithDirMode(mode os.FileMode) Option {
	return func(s *Session) {
		s.mover = transfer.NewMover(mode)
	}
}

// NewSession validates dir and show and returns a ready session.
func NewSession(dir, show string, options ...Option) (*Session, error) {
	if show == "" {
		return nil, errors.New("show name is required")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", abs)
	}

	s := &Session{
		dir:          abs,
		show:         show,
		mode:         TitlesDisabled,
		logger:       logging.Nop(),
		mover:        transfer.NewMover(0),
		processedSet: make(map[string]struct{}),
	}
	for _, opt := range options {
		opt(s)
	}

	if s.mode == TitlesEmbedded && s.titles == nil {
		return nil, errors.New("episode titles requested but no title mapping loaded")
	}
	return s, nil
}

// IsCanonical reports whether name already is the target name this session
// would give the file.
func (s *Session) IsCanonical(name string) bool {
	desc := naming.Describe(name, s.show, s.lookup())
	return desc.Identified() && desc.TargetName == name
}

// Dir returns the absolute working directory.
func (s *Session) Dir() string {
	return s.dir
}

// TitleMode returns whether titles are embedded.
func (s *Session) TitleMode() TitleMode {
	return s.mode
}

// Processed returns the new filenames of every file renamed by this
// session, across passes, in the order they were renamed.
func (s *Session) Processed() []string {
	out := make([]string, len(s.processed))
	copy(out, s.processed)
	return out
}

// Process runs one pass over the directory. Entries are handled one at a
// time in name order. On a filesystem failure the report so far is
// returned together with the error. ctx is checked between entries.
func (s *Session) Process(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:  uuid.NewString(),
		Dir:    s.dir,
		DryRun: s.dryRun,
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return report, &transfer.OpError{Op: transfer.OpList, Path: s.dir, Err: err}
	}

	s.startRun(report)

	inSeasonFolder := naming.IsSeasonFolder(filepath.Base(s.dir))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			s.finishRun(report)
			return report, err
		}

		outcome, err := s.processEntry(report.RunID, entry.Name(), inSeasonFolder)
		if err != nil {
			outcome.State = StateFailed
		}
		report.Outcomes = append(report.Outcomes, outcome)
		if err != nil {
			s.logger.Error(component, "Aborting pass", err, logging.F("file", entry.Name()))
			s.finishRun(report)
			return report, err
		}
	}

	s.finishRun(report)
	s.logger.Info(component, "Pass complete",
		logging.F("dir", s.dir),
		logging.F("renamed", report.Renamed()),
		logging.F("skipped", report.Skipped()),
		logging.F("dry_run", s.dryRun))
	return report, nil
}

func (s *Session) processEntry(runID, name string, inSeasonFolder bool) (Outcome, error) {
	src := filepath.Join(s.dir, name)
	outcome := Outcome{SourcePath: src}

	info, err := os.Stat(src)
	if err != nil || !info.Mode().IsRegular() {
		outcome.State = StateSkippedNotFile
		return outcome, nil
	}
	outcome.Size = info.Size()

	if !naming.IsVideoFile(name) {
		outcome.State = StateSkippedExtension
		return outcome, nil
	}

	desc := naming.Describe(name, s.show, s.lookup())
	outcome.Descriptor = desc
	if !desc.Identified() {
		outcome.State = StateSkippedNoIdentifier
		s.logger.Warn(component, "Skipping file (no season/episode found)", logging.F("file", name))
		return outcome, nil
	}

	renamed := filepath.Join(s.dir, desc.TargetName)
	seasonDir := filepath.Join(s.dir, desc.SeasonFolder)
	final := filepath.Join(seasonDir, desc.TargetName)
	if inSeasonFolder {
		final = renamed
	}

	if inSeasonFolder && name == desc.TargetName {
		outcome.State = StateUnchanged
		outcome.FinalPath = src
		s.track(desc.TargetName)
		s.logger.Debug(component, "Already named", logging.F("file", name))
		return outcome, nil
	}

	if s.dryRun {
		outcome.State = StatePlanned
		outcome.FinalPath = final
		s.logger.Info(component, "Would rename", logging.F("from", name), logging.F("to", final))
		return outcome, nil
	}

	// Refuse before renaming so a collision in the season folder does not
	// leave a renamed file behind.
	if !inSeasonFolder {
		if err := transfer.CheckAvailable(transfer.OpMove, final); err != nil {
			return outcome, err
		}
	}

	if err := s.mover.Rename(src, renamed); err != nil {
		return outcome, err
	}

	if inSeasonFolder {
		outcome.State = StateAlreadyInFolder
	} else {
		if err := s.mover.EnsureDir(seasonDir); err != nil {
			return outcome, err
		}
		if _, err := s.mover.MoveInto(renamed, seasonDir); err != nil {
			return outcome, err
		}
		outcome.State = StateRelocated
	}
	outcome.FinalPath = final

	s.track(desc.TargetName)
	s.record(runID, outcome)
	s.logger.Info(component, "Renamed", logging.F("from", name), logging.F("to", final))
	return outcome, nil
}

func (s *Session) lookup() naming.TitleLookup {
	if s.mode != TitlesEmbedded {
		return nil
	}
	return s.titles
}

func (s *Session) track(name string) {
	if _, ok := s.processedSet[name]; ok {
		return
	}
	s.processedSet[name] = struct{}{}
	s.processed = append(s.processed, name)
}

// Audit failures are logged but never stop a pass: the files have already
// moved by the time a record is written.
func (s *Session) record(runID string, o Outcome) {
	if s.recorder == nil || s.dryRun {
		return
	}
	err := s.recorder.RecordRename(database.RenameRecord{
		RunID:      runID,
		SourcePath: o.SourcePath,
		TargetPath: o.FinalPath,
		Season:     o.Descriptor.Season,
		Episode:    o.Descriptor.Episode,
		Moved:      o.State == StateRelocated,
		SizeBytes:  o.Size,
	})
	if err != nil {
		s.logger.Warn(component, "Failed to record rename", logging.F("error", err))
	}
}

func (s *Session) startRun(report *Report) {
	if s.recorder == nil || s.dryRun {
		return
	}
	err := s.recorder.StartRun(database.Run{
		ID:          report.RunID,
		Directory:   s.dir,
		ShowName:    s.show,
		EmbedTitles: s.mode == TitlesEmbedded,
	})
	if err != nil {
		s.logger.Warn(component, "Failed to record run", logging.F("error", err))
	}
}

func (s *Session) finishRun(report *Report) {
	if s.recorder == nil || s.dryRun {
		return
	}
	if err := s.recorder.FinishRun(report.RunID, report.Renamed(), report.Skipped()); err != nil {
		s.logger.Warn(component, "Failed to finish run", logging.F("error", err))
	}
}
