// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stringsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitLines("a\nb\nc"))
	assert.Equal(t, []string{"a", "b", "c"}, SplitLines("a\r\nb\r\nc"))
	assert.Equal(t, []string{"a", "b", ""}, SplitLines("a\nb\n"))
	assert.Equal(t, []string{""}, SplitLines(""))
}

func TestTrimCR(t *testing.T) {
	assert.Equal(t, "abc", TrimCR("abc\r"))
	assert.Equal(t, "abc", TrimCR("abc"))
	assert.Equal(t, "", TrimCR(""))
}
