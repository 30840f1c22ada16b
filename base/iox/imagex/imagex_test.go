// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 32), uint8(y * 32), 128, 255})
		}
	}
	return img
}

func TestExtToFormat(t *testing.T) {
	f, err := ExtToFormat(".png")
	assert.NoError(t, err)
	assert.Equal(t, PNG, f)

	f, err = ExtToFormat("JPG")
	assert.NoError(t, err)
	assert.Equal(t, JPEG, f)

	_, err = ExtToFormat("")
	assert.Error(t, err)

	_, err = ExtToFormat(".xyz")
	assert.Error(t, err)

	assert.Equal(t, "PNG", PNG.String())
	assert.Equal(t, "None", None.String())
}

func TestSaveOpen(t *testing.T) {
	dir := t.TempDir()
	img := testImage()

	for _, ext := range []string{"png", "bmp", "tif"} {
		fn := filepath.Join(dir, "test."+ext)
		err := Save(img, fn)
		assert.NoError(t, err)

		im, f, err := Open(fn)
		assert.NoError(t, err)
		ef, _ := ExtToFormat(ext)
		assert.Equal(t, ef, f)
		assert.Equal(t, img.Bounds(), im.Bounds())
	}

	err := Save(img, filepath.Join(dir, "test.xyz"))
	assert.Error(t, err)

	_, _, err = Open(filepath.Join(dir, "missing.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestRead(t *testing.T) {
	img := testImage()
	buf := &bytes.Buffer{}
	err := Write(img, buf, PNG)
	assert.NoError(t, err)

	im, f, err := Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, PNG, f)
	assert.Equal(t, img.Bounds(), im.Bounds())
}

func TestAsRGBA(t *testing.T) {
	img := testImage()
	assert.Equal(t, img, AsRGBA(img)) // same image, no clone

	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	rgba := AsRGBA(gray)
	assert.Equal(t, gray.Bounds(), rgba.Bounds())

	assert.Nil(t, AsRGBA(nil))
}

func TestCompareColors(t *testing.T) {
	a := color.RGBA{96, 64, 128, 255}
	assert.True(t, CompareColors(a, color.RGBA{96, 64, 128, 255}, 0))
	assert.True(t, CompareColors(a, color.RGBA{99, 61, 128, 255}, 3))
	assert.False(t, CompareColors(a, color.RGBA{99, 61, 128, 255}, 2))
	assert.False(t, CompareColors(a, color.RGBA{96, 64, 128, 0}, 10))
}

func TestDiffImage(t *testing.T) {
	a := testImage()
	b := testImage()
	b.SetRGBA(2, 2, color.RGBA{255, 255, 255, 255})
	di := DiffImage(a, b).(*image.RGBA)
	assert.NotEqual(t, color.RGBA{0, 0, 0, 255}, di.RGBAAt(2, 2))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, di.RGBAAt(0, 0))
}
