package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Staleness describes how a destination relates to its source.
type Staleness struct {
	DestExists bool
	Newer      bool // source modified strictly after destination
}

// Stale reports whether the destination has to be rebuilt.
func (s Staleness) Stale() bool {
	return !s.DestExists || s.Newer
}

// CheckStaleness compares modification times of src and dest. The source is
// only inspected when the destination exists. Timestamps are the sole signal:
// touching a source forces a rebuild and a copy that keeps old timestamps can
// hide a change.
func CheckStaleness(src, dest string) (Staleness, error) {
	destInfo, err := os.Stat(dest)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Staleness{}, nil
		}
		return Staleness{}, fmt.Errorf("checking destination: %w", err)
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return Staleness{}, fmt.Errorf("checking source: %w", err)
	}

	return Staleness{
		DestExists: true,
		Newer:      srcInfo.ModTime().After(destInfo.ModTime()),
	}, nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
