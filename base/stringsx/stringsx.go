// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stringsx provides additional string functions
// beyond those in the standard [strings] package.
package stringsx

import "strings"

// TrimCR returns the string without any trailing \r carriage return.
func TrimCR(s string) string {
	n := len(s)
	if n > 0 && s[n-1] == '\r' {
		return s[:n-1]
	}
	return s
}

// SplitLines is a windows-safe version of [strings.Split](s, "\n"),
// which removes any trailing \r carriage returns from the split lines.
func SplitLines(s string) []string {
	ls := strings.Split(s, "\n")
	for i, l := range ls {
		ls[i] = TrimCR(l)
	}
	return ls
}
