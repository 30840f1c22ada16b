// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// Log takes the given error and logs it to [slog.Error] if it is non-nil,
// adding the name and location of the function that called Log.
// It returns the error so that it can be used in-line in return statements.
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return err
}

// Log1 can be called on functions that return a value and an error,
// and logs the error like [Log] before returning just the value.
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return v
}

// Must panics with the given error if it is non-nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 can be called on functions that return a value and an error,
// and panics like [Must] on a non-nil error before returning the value.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Ignore1 can be called on functions that return a value and an error,
// ignoring the error and returning just the value.
func Ignore1[T any](v T, err error) T {
	return v
}

// CallerInfo returns the name, file, and line number of the function
// two levels up from where CallerInfo itself was called (i.e., the
// caller of the function that called CallerInfo).
func CallerInfo() string {
	pc, file, line, ok := runtime.Caller(2)
	if !ok {
		return ""
	}
	name := ""
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
		if li := strings.LastIndex(name, "/"); li >= 0 {
			name = name[li+1:]
		}
	}
	return fmt.Sprintf("%s\t%s:%d", name, file, line)
}
