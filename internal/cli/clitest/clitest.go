// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package clitest provides utilities for testing command-line applications.
package clitest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"maps"
	"strings"
	"testing"

	"go.astrophena.name/fixbraces/internal/cli"
	"go.astrophena.name/fixbraces/internal/testutil"
)

// Case represents a single test case for a command-line application.
type Case[App cli.App] struct {
	// Files is an optional txtar archive extracted to a fresh temporary
	// directory before the application runs. Every "$WORK" in Args and Env
	// values is replaced with that directory.
	Files string
	// Args are the command-line arguments to pass to the application.
	Args []string
	// Stdin is the optional standard input to pass to the application.
	Stdin io.Reader
	// Env are the environment variables visible to the application.
	Env map[string]string
	// WantErr is the expected error to be returned by the application, checked
	// with errors.Is.
	WantErr error
	// WantNothingPrinted indicates that no output should be printed to stdout or
	// stderr.
	WantNothingPrinted bool
	// WantInStdout is the expected substring to be present in the stdout output.
	WantInStdout string
	// WantInStderr is the expected substring to be present in the stderr output.
	WantInStderr string
	// CheckFunc is an optional function to perform additional checks after the
	// application has run. dir is the directory Files were extracted to.
	CheckFunc func(t *testing.T, app App, dir string)
}

// Run runs the provided test cases against the given command-line application.
func Run[App cli.App](t *testing.T, setup func(*testing.T) App, cases map[string]Case[App]) {
	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			app := setup(t)

			var dir string
			if tc.Files != "" {
				dir = testutil.ParseTxtar(t, tc.Files)
			} else {
				dir = t.TempDir()
			}
			expand := func(s string) string { return strings.ReplaceAll(s, "$WORK", dir) }

			args := make([]string, len(tc.Args))
			for i, arg := range tc.Args {
				args[i] = expand(arg)
			}
			env := maps.Clone(tc.Env)
			for k, v := range env {
				env[k] = expand(v)
			}

			stdin := tc.Stdin
			if stdin == nil {
				stdin = strings.NewReader("")
			}

			var stdout, stderr bytes.Buffer
			err := cli.Run(cli.WithEnv(context.Background(), &cli.Env{
				Args:   args,
				Getenv: func(name string) string { return env[name] },
				Stdin:  stdin,
				Stdout: &stdout,
				Stderr: &stderr,
			}), app)

			switch {
			case err == nil && tc.WantErr != nil:
				t.Fatalf("must fail with error: %v", tc.WantErr)
			case err != nil && tc.WantErr == nil:
				t.Fatalf("unexpected error: %v", err)
			case err != nil && !errors.Is(err, tc.WantErr):
				t.Fatalf("got error: %v, want %v", err, tc.WantErr)
			}

			if tc.WantNothingPrinted {
				if stdout.String() != "" {
					t.Errorf("stdout must be empty, got: %q", stdout.String())
				}
				if stderr.String() != "" {
					t.Errorf("stderr must be empty, got: %q", stderr.String())
				}
			}

			if tc.WantInStdout != "" && !strings.Contains(stdout.String(), tc.WantInStdout) {
				t.Errorf("stdout must contain %q, got: %q", tc.WantInStdout, stdout.String())
			}
			if tc.WantInStderr != "" && !strings.Contains(stderr.String(), tc.WantInStderr) {
				t.Errorf("stderr must contain %q, got: %q", tc.WantInStderr, stderr.String())
			}

			if tc.CheckFunc != nil {
				tc.CheckFunc(t, app, dir)
			}
		})
	}
}
