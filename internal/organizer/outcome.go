package organizer

import "github.com/Nomadcxx/seasonsort/internal/naming"

// State is where a directory entry ended up.
type State int

const (
	// StateSkippedNotFile: the entry is a directory or other non-regular file.
	StateSkippedNotFile State = iota
	// StateSkippedExtension: not one of the supported video extensions.
	StateSkippedExtension
	// StateSkippedNoIdentifier: no season/episode in the filename.
	StateSkippedNoIdentifier
	// StatePlanned: dry-run, the file would be renamed to FinalPath.
	StatePlanned
	// StateRelocated: renamed and moved into its season folder.
	StateRelocated
	// StateAlreadyInFolder: renamed in place, the directory already is a
	// season folder.
	StateAlreadyInFolder
	// StateUnchanged: the file already carries its canonical name inside a
	// season folder.
	StateUnchanged
	// StateFailed: a filesystem error stopped the pass at this entry.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSkippedNotFile:
		return "not a file"
	case StateSkippedExtension:
		return "not a video"
	case StateSkippedNoIdentifier:
		return "no season/episode found"
	case StatePlanned:
		return "planned"
	case StateRelocated:
		return "relocated"
	case StateAlreadyInFolder:
		return "already in season folder"
	case StateUnchanged:
		return "unchanged"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Skipped reports whether the entry was left untouched by a gate.
func (s State) Skipped() bool {
	return s == StateSkippedNotFile || s == StateSkippedExtension || s == StateSkippedNoIdentifier
}

// Outcome describes what happened to one directory entry.
type Outcome struct {
	State      State
	Descriptor naming.Descriptor
	SourcePath string
	FinalPath  string // empty when skipped
	Size       int64
}

// Report collects the outcomes of one pass, in directory order.
type Report struct {
	RunID    string
	Dir      string
	DryRun   bool
	Outcomes []Outcome
}

// Count returns the number of outcomes in state.
func (r *Report) Count(state State) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.State == state {
			n++
		}
	}
	return n
}

// Renamed returns the number of files renamed (or planned, in dry-run).
func (r *Report) Renamed() int {
	return r.Count(StateRelocated) + r.Count(StateAlreadyInFolder) + r.Count(StatePlanned)
}

// Skipped returns the number of entries skipped at any gate.
func (r *Report) Skipped() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.State.Skipped() {
			n++
		}
	}
	return n
}

// TotalBytes sums the sizes of renamed files.
func (r *Report) TotalBytes() int64 {
	var total int64
	for _, o := range r.Outcomes {
		switch o.State {
		case StateRelocated, StateAlreadyInFolder, StatePlanned:
			total += o.Size
		}
	}
	return total
}

// Changed reports whether the pass renamed, planned or flagged anything
// worth showing.
func (r *Report) Changed() bool {
	return r.Renamed() > 0 || r.Count(StateSkippedNoIdentifier) > 0 || r.Count(StateFailed) > 0
}
