// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package fixbraces

import (
	"bytes"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var sourceDirs = []string{"cmd", "internal"}

func TestGofmt(t *testing.T) {
	if _, err := exec.LookPath("gofmt"); err != nil {
		t.Skip("gofmt is not installed")
	}

	var w bytes.Buffer
	gofmt := exec.Command("gofmt", append([]string{"-l"}, sourceDirs...)...)
	gofmt.Stdout = &w
	gofmt.Stderr = &w
	if err := gofmt.Run(); err != nil {
		t.Fatalf("gofmt failed: %v\n\n%v", err, w.String())
	}
	if w.Len() > 0 {
		t.Fatalf("run gofmt on these files:\n%v", w.String())
	}
}

func TestCopyrightHeaders(t *testing.T) {
	for _, dir := range sourceDirs {
		if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || filepath.Ext(path) != ".go" {
				return nil
			}
			b, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if !strings.HasPrefix(string(b), "// © ") {
				t.Errorf("%s: missing copyright header", path)
			}
			return nil
		}); err != nil {
			t.Fatal(err)
		}
	}
}
