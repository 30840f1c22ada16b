// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package indent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpaces(t *testing.T) {
	assert.Equal(t, "", Spaces(0, 4))
	assert.Equal(t, "    ", Spaces(1, 4))
	assert.Equal(t, "      ", Spaces(3, 2))
}
