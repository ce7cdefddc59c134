package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is matched by every ResolutionError.
var ErrNotFound = errors.New("directory not found")

// ResolutionError means that no directory matching the hint exists between the starting
// directory and the filesystem root.
type ResolutionError struct {
	StartDir string
	Hint     string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no directory matching %q found above %s", e.Hint, e.StartDir)
}

func (e *ResolutionError) Is(target error) bool {
	return target == ErrNotFound
}

// Resolver locates the directory holding the automation-engine binaries.
type Resolver struct {
	// ReadDir lists a directory; os.ReadDir is used if nil.
	ReadDir func(name string) ([]os.DirEntry, error)
}

// Resolve walks upward from startDir. At each level it returns the current directory if its
// name contains hint, or else the first sibling directory whose name does. Matching is
// case-insensitive. The search ends at the filesystem root with a *ResolutionError.
func (r Resolver) Resolve(startDir, hint string) (string, error) {
	if hint == "" {
		return "", errors.New("directory hint must not be empty")
	}
	readDir := r.ReadDir
	if readDir == nil {
		readDir = os.ReadDir
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	want := strings.ToLower(hint)

	for {
		if nameContains(dir, want) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &ResolutionError{StartDir: startDir, Hint: hint}
		}
		entries, err := readDir(parent)
		if err != nil {
			return "", fmt.Errorf("could not list %s: %w", parent, err)
		}
		for _, e := range entries {
			if e.IsDir() && strings.Contains(strings.ToLower(e.Name()), want) {
				return filepath.Join(parent, e.Name()), nil
			}
		}
		dir = parent
	}
}

func nameContains(dir, lowerHint string) bool {
	return strings.Contains(strings.ToLower(filepath.Base(dir)), lowerHint)
}
