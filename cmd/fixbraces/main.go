// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"go.astrophena.name/fixbraces/internal/cli"
	"go.astrophena.name/fixbraces/internal/cli/envflag"
	"go.astrophena.name/fixbraces/internal/diff"
	"go.astrophena.name/fixbraces/internal/fixer"
	"go.astrophena.name/fixbraces/internal/logger"
	"go.astrophena.name/fixbraces/internal/restrict"
)

func main() { cli.Main(new(app)) }

// defaultFiles are processed when no files are given on the command line.
var defaultFiles = []string{
	"src/simplex_noise.c",
	"src/simplex_image.c",
	"tests/test_basic.c",
	"tests/test_config.c",
	"tests/test_performance.c",
	"examples/example_2d.c",
	"examples/example_3d.c",
	"examples/example_config.c",
	"examples/example_fractal.c",
	"examples/example_image.c",
}

type app struct {
	// flags
	root    *string
	dryRun  *bool
	diff    *bool
	backup  *bool
	verbose *bool

	// set by Run, for tests
	report fixer.Report
}

func (a *app) Flags(fs *flag.FlagSet, env *cli.Env) {
	a.root = envflag.Value(fs, env.Getenv, "C", "FIXBRACES_ROOT", ".", "Resolve relative file paths against this `dir`.")
	a.dryRun = envflag.Value(fs, env.Getenv, "n", "FIXBRACES_DRY_RUN", false, "Report what would change, but don't write files.")
	a.diff = envflag.Value(fs, env.Getenv, "d", "FIXBRACES_DIFF", false, "Print unified diffs of changes to stdout.")
	a.backup = envflag.Value(fs, env.Getenv, "backup", "FIXBRACES_BACKUP", false, "Keep a timestamped .bak copy of every rewritten file.")
	a.verbose = envflag.Value(fs, env.Getenv, "v", "FIXBRACES_VERBOSE", false, "Enable debug logging.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	if *a.root == "" {
		return fmt.Errorf("%w: -C must not be empty", cli.ErrInvalidArgs)
	}
	if *a.verbose {
		logger.Get(ctx).Level.Set(slog.LevelDebug)
	}

	files := env.Args
	if len(files) == 0 {
		files = defaultFiles
	}

	f := &fixer.Fixer{
		Root:   *a.root,
		DryRun: *a.dryRun,
		Backup: *a.backup,
	}
	if *a.diff {
		f.Diff = diff.NewPrinter(env.Stdout, logger.IsTerminal(env.Stdout))
	}

	// Drop privileges if not in tests.
	restrict.DoUnlessTesting(ctx, f.Dirs(files)...)

	r, err := f.Run(ctx, files)
	a.report = r
	return err
}
