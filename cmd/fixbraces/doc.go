// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Fixbraces wraps single-statement if bodies of C source files in braces.

# Usage

	$ fixbraces [flags...] [file...]

Each file is rewritten in place, so that

	if (x > 0)
	        return x;

becomes

	if (x > 0) {
	        return x;
	    }

Files that don't exist are skipped. Files that need no changes are left
untouched, so running fixbraces twice is safe.

When no files are given, fixbraces processes the sources of the simplex noise
library relative to the current directory (or to the directory given by -C):

	src/simplex_noise.c
	src/simplex_image.c
	tests/test_basic.c
	tests/test_config.c
	tests/test_performance.c
	examples/example_2d.c
	examples/example_3d.c
	examples/example_config.c
	examples/example_fractal.c
	examples/example_image.c

# Limitations

The rewrite is a regular expression, not a C parser. Conditions that contain
parentheses, such as function calls, are not recognized, and the braces are
always indented with four and eight spaces.

# Examples

Preview the changes as a diff, without writing anything:

	$ fixbraces -n -d

Fix two files, keeping backups of the originals:

	$ fixbraces -backup lib/a.c lib/b.c
*/
package main

import (
	_ "embed"

	"go.astrophena.name/fixbraces/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
