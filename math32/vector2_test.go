// Copyright 2024 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/fixed"
)

func TestVector2(t *testing.T) {
	assert.Equal(t, Vector2{5, 10}, Vec2(5, 10))
	assert.Equal(t, Vector2{20, 20}, Vector2Scalar(20))
	assert.Equal(t, Vector2{15, -5}, Vector2FromPoint(image.Pt(15, -5)))
	assert.Equal(t, Vector2{8, 3}, Vector2FromFixed(fixed.P(8, 3)))

	v := Vector2{}
	v.Set(-1, 7)
	assert.Equal(t, Vector2{-1, 7}, v)

	v.SetScalar(8.12)
	assert.Equal(t, Vector2{8.12, 8.12}, v)

	v.SetFromVector2i(Vector2i{8, 9})
	assert.Equal(t, Vector2{8, 9}, v)
}

func TestVector2Point(t *testing.T) {
	v := Vec2(2.6, 3.2)
	assert.Equal(t, image.Pt(2, 3), v.ToPoint())
	assert.Equal(t, image.Pt(3, 4), v.ToPointCeil())
	assert.Equal(t, image.Pt(2, 3), v.ToPointFloor())
	assert.Equal(t, image.Pt(3, 3), v.ToPointRound())

	v.SetPoint(image.Pt(800, 600))
	assert.Equal(t, Vector2{800, 600}, v)
}

func TestVector2Math(t *testing.T) {
	a := Vec2(3, 4)
	b := Vec2(1, 2)

	assert.Equal(t, Vec2(4, 6), a.Add(b))
	assert.Equal(t, Vec2(2, 2), a.Sub(b))
	assert.Equal(t, Vec2(3, 8), a.Mul(b))
	assert.Equal(t, Vec2(1.5, 2), a.DivScalar(2))
	assert.Equal(t, Vector2{}, a.DivScalar(0))

	assert.Equal(t, float32(5), a.Length())
	assert.Equal(t, float32(11), a.Dot(b))
	assert.InDelta(t, 1, a.Normal().Length(), 1.0e-6)

	assert.Equal(t, Vec2(1, 2), a.Min(b))
	assert.Equal(t, Vec2(3, 4), a.Max(b))
}
