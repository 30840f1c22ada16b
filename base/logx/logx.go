// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides a simple console [slog.Handler] with colored
// log levels, and a global user verbosity level that controls both
// slog output and the verbosity of command line apps in general.
package logx

import (
	"log/slog"
	"os"
)

// UserLevel is the verbosity [slog.Level] that the user has selected,
// typically through command line flags. It defaults to [slog.LevelInfo].
// Any log messages below this level are not shown.
var UserLevel = slog.LevelInfo

// UseDefault installs a [Handler] writing to [os.Stderr] as the default
// handler for the standard log and slog packages.
func UseDefault() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}
