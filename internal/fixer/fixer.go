// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package fixer applies [braces.Fix] to files on disk.
package fixer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"go.astrophena.name/fixbraces/internal/atomicio"
	"go.astrophena.name/fixbraces/internal/braces"
	"go.astrophena.name/fixbraces/internal/diff"
	"go.astrophena.name/fixbraces/internal/logger"
)

// Outcome is the result of fixing a single file.
type Outcome int

const (
	// Unchanged means the file needed no rewrite.
	Unchanged Outcome = iota
	// Modified means the file was rewritten (or would be, in a dry run).
	Modified
	// NotFound means the file does not exist.
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Modified:
		return "modified"
	case NotFound:
		return "not found"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Fixer rewrites files in place. The zero value is ready to use and rewrites
// paths relative to the current directory.
type Fixer struct {
	// Root is the directory relative paths are resolved against.
	// Empty means the current directory.
	Root string
	// DryRun reports what would change without writing anything.
	DryRun bool
	// Backup keeps a timestamped copy of every rewritten file.
	Backup bool
	// Diff, if set, receives a unified diff of every change.
	Diff *diff.Printer
}

// Report summarizes a run over a list of files.
type Report struct {
	Modified  []string // paths that were (or would be) rewritten
	Skipped   []string // paths that do not exist
	Unchanged int      // number of paths that needed no rewrite
}

// Count returns the number of modified files.
func (r Report) Count() int { return len(r.Modified) }

// File fixes a single file.
//
// A missing file is reported as NotFound with a nil error. Any other failure
// to read or write the file is returned as an error.
func (f *Fixer) File(ctx context.Context, path string) (Outcome, error) {
	name := f.resolve(path)

	src, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return NotFound, nil
	}
	if err != nil {
		return Unchanged, err
	}

	out, changed := braces.Fix(src)
	if !changed {
		return Unchanged, nil
	}
	logger.Debug(ctx, "rewriting", slog.String("path", path), slog.Int("sites", braces.Count(src)))

	if f.Diff != nil {
		if err := f.Diff.Print(filepath.ToSlash(path), src, out); err != nil {
			return Unchanged, err
		}
	}
	if f.DryRun {
		return Modified, nil
	}

	perm := fs.FileMode(0o644)
	if fi, err := os.Stat(name); err == nil {
		perm = fi.Mode().Perm()
	}
	if err := atomicio.WriteFile(name, out, perm, f.Backup); err != nil {
		return Unchanged, err
	}
	return Modified, nil
}

// Run fixes every file in paths, in order.
//
// Missing files are skipped. Any other error stops the run immediately; the
// returned report then covers only the files processed before the failure,
// and files already rewritten stay rewritten.
func (f *Fixer) Run(ctx context.Context, paths []string) (Report, error) {
	var r Report
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return r, err
		}

		outcome, err := f.File(ctx, path)
		if err != nil {
			return r, fmt.Errorf("%s: %w", path, err)
		}

		switch outcome {
		case NotFound:
			logger.Warn(ctx, "file not found, skipping", slog.String("path", path))
			r.Skipped = append(r.Skipped, path)
		case Modified:
			msg := "fixed braces"
			if f.DryRun {
				msg = "would fix braces"
			}
			logger.Info(ctx, msg, slog.String("path", path))
			r.Modified = append(r.Modified, path)
		case Unchanged:
			logger.Debug(ctx, "no changes needed", slog.String("path", path))
			r.Unchanged++
		}
	}

	msg := "fixed braces in files"
	if f.DryRun {
		msg = "would fix braces in files"
	}
	logger.Info(ctx, msg, slog.Int("count", r.Count()))
	return r, nil
}

// Dirs returns the directories containing paths, resolved against Root.
func (f *Fixer) Dirs(paths []string) []string {
	dirs := make([]string, 0, len(paths))
	for _, p := range paths {
		dirs = append(dirs, filepath.Dir(f.resolve(p)))
	}
	return dirs
}

func (f *Fixer) resolve(path string) string {
	if f.Root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.Root, path)
}
