// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package num

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbs(t *testing.T) {
	assert.Equal(t, 3, Abs(-3))
	assert.Equal(t, 3, Abs(3))
	assert.Equal(t, float32(1.5), Abs(float32(-1.5)))
	assert.Equal(t, 0, Abs(0))
}

func TestBool(t *testing.T) {
	assert.True(t, ToBool(4))
	assert.False(t, ToBool(0.0))
	assert.Equal(t, 1, FromBool[int](true))
	assert.Equal(t, 0, FromBool[int](false))
}
