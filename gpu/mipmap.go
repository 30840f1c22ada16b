// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"golang.org/x/image/draw"
)

// NumMipLevels returns the number of mip levels needed for a full
// mip chain for a texture of given size: log2 of the larger dimension.
func NumMipLevels(width, height int) int {
	levels := 1
	for sz := max(width, height); sz > 1; sz >>= 1 {
		levels++
	}
	return levels
}

// MipImages returns a chain of mip level images, starting with the
// given source image, with each subsequent level half the size,
// downsampled from the previous one using bilinear interpolation.
func MipImages(src *image.RGBA, levels int) []*image.RGBA {
	mips := make([]*image.RGBA, 0, levels)
	mips = append(mips, src)
	w := src.Rect.Dx()
	h := src.Rect.Dy()
	for li := 1; li < levels; li++ {
		w = max(1, w/2)
		h = max(1, h/2)
		ds := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(ds, ds.Rect, mips[li-1], mips[li-1].Rect, draw.Src, nil)
		mips = append(mips, ds)
	}
	return mips
}
