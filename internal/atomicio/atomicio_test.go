// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package atomicio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.astrophena.name/fixbraces/internal/testutil"
)

func TestWriteFile(t *testing.T) {
	t.Run("new file", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "a.c")

		if err := WriteFile(file, []byte("int x;\n"), 0o644, true); err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, testutil.ReadFile(t, file), "int x;\n")

		backups, err := Backups(file)
		if err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, len(backups), 0)
	})

	t.Run("overwrite without backup", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "a.c")
		if err := os.WriteFile(file, []byte("old\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := WriteFile(file, []byte("new\n"), 0o644, false); err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, testutil.ReadFile(t, file), "new\n")

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, len(entries), 1)
	})

	t.Run("overwrite with backup", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "a.c")
		if err := os.WriteFile(file, []byte("old\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := WriteFile(file, []byte("new\n"), 0o644, true); err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, testutil.ReadFile(t, file), "new\n")

		backups, err := Backups(file)
		if err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, len(backups), 1)
		testutil.AssertEqual(t, testutil.ReadFile(t, backups[0]), "old\n")
	})

	t.Run("keeps permissions", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "run.sh")
		if err := WriteFile(file, []byte("#!/bin/sh\n"), 0o755, false); err != nil {
			t.Fatal(err)
		}
		fi, err := os.Stat(file)
		if err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, fi.Mode().Perm(), os.FileMode(0o755))
	})

	t.Run("prune", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "a.c")

		ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		now = func() time.Time {
			ts = ts.Add(time.Second)
			return ts
		}
		t.Cleanup(func() { now = time.Now })

		for i := 0; i < maxBackups+3; i++ {
			if err := WriteFile(file, []byte{byte('a' + i)}, 0o644, true); err != nil {
				t.Fatal(err)
			}
		}

		backups, err := Backups(file)
		if err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, len(backups), maxBackups)
		// The oldest backups hold the earliest contents and are removed first.
		testutil.AssertEqual(t, testutil.ReadFile(t, backups[len(backups)-1]), string([]byte{byte('a' + maxBackups + 1)}))
	})
}
