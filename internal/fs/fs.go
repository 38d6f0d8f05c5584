// Package fs provides filesystem adapters for the workspace service.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoProject is returned when no project directory is found.
var ErrNoProject = errors.New("no .fmx/ directory found")

// ErrTargetExists is returned when a rename would overwrite a file.
var ErrTargetExists = errors.New("target file already exists")

// ProjectDir is the marker directory of an fmx workspace.
const ProjectDir = ".fmx"

// OSReader implements workspace.FileReader using os.ReadFile.
type OSReader struct{}

// ReadFile reads the full content of path.
func (OSReader) ReadFile(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// OSWriter implements workspace.FileWriter using os.WriteFile.
type OSWriter struct{}

// WriteFile replaces the content of path, keeping its permissions.
func (OSWriter) WriteFile(_ context.Context, path, content string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, []byte(content), mode)
}

// OSRenamer implements workspace.FileRenamer using os.Rename. It never
// overwrites an existing file; a change of letter case only is allowed.
type OSRenamer struct{}

// RenameFile moves oldPath to newPath.
func (OSRenamer) RenameFile(_ context.Context, oldPath, newPath string) error {
	if !strings.EqualFold(oldPath, newPath) {
		if _, err := os.Lstat(newPath); err == nil {
			return fmt.Errorf("%s: %w", newPath, ErrTargetExists)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return os.Rename(oldPath, newPath)
}

// FindProjectRoot walks up from start looking for a .fmx/ directory.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}

	for {
		info, err := os.Stat(filepath.Join(dir, ProjectDir))
		if err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProject
		}
		dir = parent
	}
}

// FindProjectRootFromCwd runs FindProjectRoot from the working directory.
func FindProjectRootFromCwd() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return FindProjectRoot(dir)
}

// RelPath returns path relative to root using forward slashes. Paths
// outside root keep their leading "../".
func RelPath(root, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
