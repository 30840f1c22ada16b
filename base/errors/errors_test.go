// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	err := New("test error")
	assert.Equal(t, err, Log(err))
}

func TestLog1(t *testing.T) {
	assert.Equal(t, 42, Log1(42, nil))
	assert.Equal(t, "v", Log1("v", New("test error")))
}

func TestMust(t *testing.T) {
	Must(nil)
	assert.Equal(t, 3, Must1(3, nil))
	assert.Panics(t, func() { Must(New("test error")) })
	assert.Panics(t, func() { Must1(0, New("test error")) })
}

func TestIgnore1(t *testing.T) {
	assert.Equal(t, "v", Ignore1("v", New("test error")))
}

func TestJoin(t *testing.T) {
	assert.NoError(t, Join(nil, nil))
	a := New("a")
	b := New("b")
	j := Join(a, nil, b)
	assert.True(t, Is(j, a))
	assert.True(t, Is(j, b))
}

func TestAsUnwrap(t *testing.T) {
	base := New("base")
	wrapped := fmt.Errorf("context: %w", base)
	assert.Equal(t, base, Unwrap(wrapped))

	perr := &fs.PathError{Op: "open", Path: "x", Err: base}
	var target *fs.PathError
	assert.True(t, As(perr, &target))
	assert.Equal(t, "x", target.Path)
}

func callerInfoWrap() string {
	return CallerInfo()
}

func TestCallerInfo(t *testing.T) {
	assert.Contains(t, callerInfoWrap(), "errors_test.go")
}
