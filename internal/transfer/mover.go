package transfer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Mover renames and relocates files without ever replacing an existing one.
type Mover struct {
	// DirMode is applied to folders created by EnsureDir. Zero means
	// DefaultDirMode.
	DirMode os.FileMode
}

// NewMover returns a Mover that creates folders with mode.
func NewMover(mode os.FileMode) *Mover {
	return &Mover{DirMode: mode}
}

// Rename renames src to dst. Renaming a file to its own name is a no-op.
func (m *Mover) Rename(src, dst string) error {
	return m.relocate(OpRename, src, dst)
}

// MoveInto moves src into dir, keeping its base name, and returns the new
// path.
func (m *Mover) MoveInto(src, dir string) (string, error) {
	dst := filepath.Join(dir, filepath.Base(src))
	if err := m.relocate(OpMove, src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// EnsureDir creates dir if it does not exist yet. An existing non-directory
// at that path is an error.
func (m *Mover) EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return &OpError{Op: OpMkdir, Path: dir, Err: fmt.Errorf("%w: not a directory", ErrDestinationNotWritable)}
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return &OpError{Op: OpMkdir, Path: dir, Err: err}
	}

	mode := m.DirMode
	if mode == 0 {
		mode = DefaultDirMode
	}
	if err := os.MkdirAll(dir, mode); err != nil {
		return &OpError{Op: OpMkdir, Path: dir, Err: fmt.Errorf("%w: %w", ErrDestinationNotWritable, err)}
	}
	// MkdirAll is subject to the umask
	if m.DirMode != 0 {
		if err := os.Chmod(dir, m.DirMode); err != nil {
			return &OpError{Op: OpMkdir, Path: dir, Err: err}
		}
	}
	return nil
}

func (m *Mover) relocate(op Op, src, dst string) error {
	if src == dst {
		return nil
	}

	srcInfo, err := os.Lstat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &OpError{Op: op, Path: src, Err: fmt.Errorf("%w: %w", ErrSourceNotFound, err)}
		}
		return &OpError{Op: op, Path: src, Err: err}
	}

	dstInfo, err := os.Lstat(dst)
	switch {
	case err == nil:
		// Case-only renames on case-insensitive filesystems see the source
		// at the destination path.
		if !os.SameFile(srcInfo, dstInfo) {
			return &OpError{Op: op, Path: dst, Err: ErrTargetExists}
		}
	case !errors.Is(err, fs.ErrNotExist):
		return &OpError{Op: op, Path: dst, Err: err}
	}

	if err := os.Rename(src, dst); err != nil {
		return &OpError{Op: op, Path: src, Err: err}
	}
	return nil
}
