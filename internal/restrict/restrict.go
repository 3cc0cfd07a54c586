// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package restrict

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// DoUnlessTesting restricts file system access of the whole program to
// reading and writing inside dirs, unless the program is running under
// 'go test'.
//
// If sandboxing fails, a log message will be generated, but the program will
// continue execution.
func DoUnlessTesting(ctx context.Context, dirs ...string) {
	if !testing.Testing() {
		Do(ctx, ExistingDirs(dirs)...)
	}
}

// ExistingDirs returns the cleaned, deduplicated subset of dirs that exist
// and are directories. Landlock rules can only be placed on existing paths.
func ExistingDirs(dirs []string) []string {
	var out []string
	for _, d := range dirs {
		d = filepath.Clean(d)
		if resolved, err := filepath.EvalSymlinks(d); err == nil {
			d = resolved
		}
		fi, err := os.Stat(d)
		if err != nil || !fi.IsDir() {
			continue
		}
		if !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	return out
}
