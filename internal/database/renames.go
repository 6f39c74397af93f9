package database

import (
	"database/sql"
	"fmt"
	"time"
)

const timeFormat = time.RFC3339Nano

// Run is one pass of the renamer over a directory.
type Run struct {
	ID          string
	Directory   string
	ShowName    string
	EmbedTitles bool
	StartedAt   time.Time
	FinishedAt  time.Time // zero while the run is in progress or if it aborted
	Renamed     int
	Skipped     int
}

// RenameRecord is one file renamed during a run.
type RenameRecord struct {
	ID         int64
	RunID      string
	SourcePath string
	TargetPath string
	Season     string
	Episode    string
	Moved      bool
	SizeBytes  int64
	ExecutedAt time.Time
}

// StartRun inserts a run row. StartedAt defaults to now.
func (h *HistoryDB) StartRun(run Run) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	_, err := h.db.Exec(`
		INSERT INTO runs (id, directory, show_name, embed_titles, started_at)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.Directory, run.ShowName, boolToInt(run.EmbedTitles), run.StartedAt.UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.ID, err)
	}
	return nil
}

// FinishRun stores the final counters of a run.
func (h *HistoryDB) FinishRun(id string, renamed, skipped int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	res, err := h.db.Exec(`
		UPDATE runs SET finished_at = ?, renamed = ?, skipped = ? WHERE id = ?
	`, time.Now().UTC().Format(timeFormat), renamed, skipped, id)
	if err != nil {
		return fmt.Errorf("failed to finish run %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return nil
}

// RecordRename appends a renamed file to the audit trail.
func (h *HistoryDB) RecordRename(rec RenameRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if rec.ExecutedAt.IsZero() {
		rec.ExecutedAt = time.Now()
	}

	_, err := h.db.Exec(`
		INSERT INTO renames (run_id, source_path, target_path, season, episode, moved, size_bytes, executed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.RunID, rec.SourcePath, rec.TargetPath, rec.Season, rec.Episode,
		boolToInt(rec.Moved), rec.SizeBytes, rec.ExecutedAt.UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("failed to record rename of %s: %w", rec.SourcePath, err)
	}
	return nil
}

// RecentRenames returns the latest renames, newest first.
func (h *HistoryDB) RecentRenames(limit int) ([]RenameRecord, error) {
	return h.queryRenames(`
		SELECT id, run_id, source_path, target_path, season, episode, moved, size_bytes, executed_at
		FROM renames
		ORDER BY id DESC
		LIMIT ?
	`, limit)
}

// RenamesForRun returns the renames of one run in the order they happened.
func (h *HistoryDB) RenamesForRun(runID string) ([]RenameRecord, error) {
	return h.queryRenames(`
		SELECT id, run_id, source_path, target_path, season, episode, moved, size_bytes, executed_at
		FROM renames
		WHERE run_id = ?
		ORDER BY id ASC
	`, runID)
}

func (h *HistoryDB) queryRenames(query string, args ...interface{}) ([]RenameRecord, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RenameRecord
	for rows.Next() {
		var rec RenameRecord
		var moved int
		var executedAt string
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.SourcePath, &rec.TargetPath,
			&rec.Season, &rec.Episode, &moved, &rec.SizeBytes, &executedAt); err != nil {
			return nil, err
		}
		rec.Moved = moved != 0
		rec.ExecutedAt, _ = time.Parse(timeFormat, executedAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// RecentRuns returns the latest runs, newest first.
func (h *HistoryDB) RecentRuns(limit int) ([]Run, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rows, err := h.db.Query(`
		SELECT id, directory, show_name, embed_titles, started_at, finished_at, renamed, skipped
		FROM runs
		ORDER BY rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var embed int
		var started string
		var finished sql.NullString
		if err := rows.Scan(&run.ID, &run.Directory, &run.ShowName, &embed,
			&started, &finished, &run.Renamed, &run.Skipped); err != nil {
			return nil, err
		}
		run.EmbedTitles = embed != 0
		run.StartedAt, _ = time.Parse(timeFormat, started)
		if finished.Valid {
			run.FinishedAt, _ = time.Parse(timeFormat, finished.String)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
