// Package transfer provides the filesystem primitives used to relocate
// episodes: a collision-checked rename, a move into a folder, and folder
// creation. Every failure is returned as an *OpError naming the operation
// and path, wrapping one of the sentinel errors below where one applies.
//
// Existing destinations are never overwritten. os.Rename silently
// replaces files on Unix and fails on Windows; checking first gives one
// behavior everywhere.
package transfer

import (
	"errors"
	"fmt"
	"os"
)

// Common errors returned by transfer operations
var (
	// ErrTargetExists is returned when the destination already exists and
	// is not the source file itself
	ErrTargetExists = errors.New("target already exists")

	// ErrSourceNotFound is returned when the source file doesn't exist
	ErrSourceNotFound = errors.New("source file not found")

	// ErrDestinationNotWritable is returned when a folder cannot be created
	// or a path that must be a folder is something else
	ErrDestinationNotWritable = errors.New("destination not writable")
)

// Op names a filesystem operation for error reporting.
type Op string

const (
	OpRename Op = "rename"
	OpMove   Op = "move"
	OpMkdir  Op = "mkdir"
	OpList   Op = "list"
)

// OpError records a failed filesystem operation.
type OpError struct {
	Op   Op
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// DefaultDirMode is used for created folders when no mode is configured.
const DefaultDirMode os.FileMode = 0755

// CheckAvailable returns an *OpError wrapping ErrTargetExists when something
// already exists at path.
func CheckAvailable(op Op, path string) error {
	if _, err := os.Lstat(path); err == nil {
		return &OpError{Op: op, Path: path, Err: ErrTargetExists}
	}
	return nil
}
