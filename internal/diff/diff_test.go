// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package diff

import (
	"bytes"
	"strings"
	"testing"

	"go.astrophena.name/fixbraces/internal/testutil"
)

var (
	before = []byte("int f(int x) {\n    if (x < 0)\n        x = -x;\n    return x;\n}\n")
	after  = []byte("int f(int x) {\n    if (x < 0) {\n        x = -x;\n    }\n    return x;\n}\n")
)

func TestUnified(t *testing.T) {
	t.Parallel()

	d, err := Unified("src/f.c", before, after)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"--- a/src/f.c\n",
		"+++ b/src/f.c\n",
		"-    if (x < 0)\n",
		"+    if (x < 0) {\n",
		"+    }\n",
		" int f(int x) {\n",
	} {
		if !strings.Contains(d, want) {
			t.Errorf("diff must contain %q, got:\n%s", want, d)
		}
	}
}

func TestUnifiedEqual(t *testing.T) {
	t.Parallel()

	d, err := Unified("src/f.c", before, before)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, d, "")
}

func TestPrinter(t *testing.T) {
	t.Parallel()

	want, err := Unified("f.c", before, after)
	if err != nil {
		t.Fatal(err)
	}

	var plain bytes.Buffer
	if err := NewPrinter(&plain, false).Print("f.c", before, after); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, plain.String(), want)

	var colored bytes.Buffer
	if err := NewPrinter(&colored, true).Print("f.c", before, after); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(colored.String(), "\x1b[32m+    }") {
		t.Errorf("added lines must be green, got %q", colored.String())
	}
	if !strings.Contains(colored.String(), "\x1b[31m-    if (x < 0)") {
		t.Errorf("removed lines must be red, got %q", colored.String())
	}
}
