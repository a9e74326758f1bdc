// Package writer applies file changes planned by a sync, with validation
// and dry-run reporting.
package writer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation is a planned file change.
//
// Validate checks that Execute would succeed without touching the file.
// Execute performs the change. Description is a one-line summary for output.
type Operation interface {
	Validate(ctx context.Context) error
	Execute(ctx context.Context) error
	Description() string
}

// UpdateFileOp replaces the content of an existing file, keeping its mode.
type UpdateFileOp struct {
	Path    string
	Content []byte // may be empty, must not be nil
	Summary string // optional, appended to the description
}

func (op *UpdateFileOp) Validate(ctx context.Context) error {
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}
	info, err := os.Stat(op.Path)
	if err != nil {
		return fmt.Errorf("cannot update %s: %w", op.Path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot update %s: is a directory", op.Path)
	}
	return nil
}

func (op *UpdateFileOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mode := fs.FileMode(0644)
	if info, err := os.Stat(op.Path); err == nil {
		mode = info.Mode().Perm()
	}
	return replaceFile(op.Path, op.Content, mode)
}

// replaceFile stages content in a sibling temp file and renames it over
// path, so an interrupted write never leaves a truncated manifest.
func replaceFile(path string, content []byte, mode fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}
	staged := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(staged) // best effort
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", staged, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", staged, err)
	}
	if err := os.Chmod(staged, mode); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", staged, err)
	}
	if err := os.Rename(staged, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	committed = true
	return nil
}

func (op *UpdateFileOp) Description() string {
	desc := fmt.Sprintf("Update %s (%d bytes)", op.Path, len(op.Content))
	if op.Summary != "" {
		desc += ": " + op.Summary
	}
	return desc
}
