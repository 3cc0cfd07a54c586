// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

//go:build linux && !android

package restrict

import (
	"context"
	"log/slog"

	"go.astrophena.name/fixbraces/internal/logger"

	"github.com/landlock-lsm/go-landlock/landlock"
)

// Do restricts all goroutines of this program to reading and writing files
// inside dirs.
func Do(ctx context.Context, dirs ...string) {
	if err := landlock.V3.BestEffort().Restrict(landlock.RWDirs(dirs...)); err != nil {
		logger.Warn(ctx, "sandboxing failed", slog.Any("err", err))
		return
	}
	logger.Debug(ctx, "sandboxed", slog.Any("dirs", dirs))
}
