// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"cogentcore.org/gpulearn/base/iox/imagex"
	"cogentcore.org/gpulearn/math32"
	"github.com/anthonynsimon/bild/transform"
)

// ImageToRGBA returns the image as an [image.RGBA], converting
// if necessary.
func ImageToRGBA(img image.Image) *image.RGBA {
	return imagex.AsRGBA(img)
}

// FlipY returns a vertically flipped copy of the given image,
// for texture sources that use a bottom-up row order.
func FlipY(img image.Image) *image.RGBA {
	return transform.FlipV(img)
}

// SRGBToLinearComp converts an sRGB rgb component to linear space (removes gamma).
func SRGBToLinearComp(srgb float32) float32 {
	if srgb <= 0.04045 {
		return srgb / 12.92
	}
	return math32.Pow((srgb+0.055)/1.055, 2.4)
}

// SRGBToLinear converts set of sRGB components to linear values,
// removing gamma correction.
func SRGBToLinear(r, g, b float32) (rl, gl, bl float32) {
	rl = SRGBToLinearComp(r)
	gl = SRGBToLinearComp(g)
	bl = SRGBToLinearComp(b)
	return
}
