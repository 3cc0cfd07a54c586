// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package syncx

import "testing"

func TestLazy(t *testing.T) {
	t.Parallel()

	var (
		l     Lazy[string]
		calls int
	)
	f := func() string {
		calls++
		return "usage"
	}
	for i := 0; i < 3; i++ {
		if got := l.Get(f); got != "usage" {
			t.Fatalf("Get() = %q, want %q", got, "usage")
		}
	}
	if calls != 1 {
		t.Fatalf("f called %d times, want 1", calls)
	}
}
