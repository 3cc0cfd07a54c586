// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package atomicio provides atomic file writing with optional backups.
package atomicio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/creachadair/atomicfile"
)

const (
	backupTimeFormat = "20060102150405.000000000"
	maxBackups       = 10
)

// now is replaced in tests.
var now = time.Now

// WriteFile replaces the contents of name with data. Readers never observe a
// partially written file: data goes to a temporary file in the same directory
// which is then renamed over name.
//
// If backup is true and name exists, a copy of its current contents is kept
// as name.<timestamp>.bak, and all but the newest backups are pruned.
func WriteFile(name string, data []byte, perm fs.FileMode, backup bool) error {
	if backup {
		if err := copyToBackup(name, perm); err != nil {
			return err
		}
	}

	f, err := atomicfile.New(name, perm)
	if err != nil {
		return err
	}
	defer f.Cancel()

	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if backup {
		return pruneBackups(name)
	}
	return nil
}

// Backups returns the backups of name, oldest first.
func Backups(name string) ([]string, error) {
	backups, err := filepath.Glob(globEscape(name) + ".*.bak")
	if err != nil {
		return nil, err
	}
	slices.Sort(backups)
	return backups, nil
}

func copyToBackup(name string, perm fs.FileMode) error {
	b, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	backupName := name + "." + now().UTC().Format(backupTimeFormat) + ".bak"
	return os.WriteFile(backupName, b, perm)
}

func pruneBackups(name string) error {
	backups, err := Backups(name)
	if err != nil {
		return err
	}
	if len(backups) <= maxBackups {
		return nil
	}
	for _, b := range backups[:len(backups)-maxBackups] {
		if err := os.Remove(b); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// globEscape escapes glob metacharacters in a literal path.
var globEscape = strings.NewReplacer("*", "[*]", "?", "[?]", "[", "[[]").Replace
