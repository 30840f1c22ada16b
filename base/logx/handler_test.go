// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandler(t *testing.T) {
	UseColor = false
	defer func() { UseColor = true }()

	buf := &bytes.Buffer{}
	lg := slog.New(NewHandler(buf))

	lg.Info("hello", "answer", 42)
	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "answer: 42")

	buf.Reset()
	lg.Debug("quiet") // below UserLevel
	assert.Empty(t, buf.String())

	buf.Reset()
	lg.Error("broke", "err", "file not found")
	out = buf.String()
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, `err: "file not found"`)
}

func TestHandlerGroups(t *testing.T) {
	UseColor = false
	defer func() { UseColor = true }()

	buf := &bytes.Buffer{}
	lg := slog.New(NewHandler(buf)).WithGroup("gpu").With("device", "test")

	lg.Warn("slow frame", "ms", 32)
	out := buf.String()
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "gpu:")
	assert.Contains(t, out, `device: "test"`)
	assert.Contains(t, out, "ms: 32")
}

func TestUserLevel(t *testing.T) {
	UseColor = false
	defer func() {
		UseColor = true
		UserLevel = slog.LevelInfo
	}()

	buf := &bytes.Buffer{}
	lg := slog.New(NewHandler(buf))

	UserLevel = slog.LevelDebug
	lg.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")

	buf.Reset()
	UserLevel = slog.LevelError
	lg.Warn("hidden")
	assert.Empty(t, buf.String())
}
