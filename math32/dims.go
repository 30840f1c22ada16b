// Copyright 2021 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Dims is a list of vector dimension (component) names.
type Dims int32

const (
	X Dims = iota
	Y
	Z
	W
)

// DimsN is the number of dimensions.
const DimsN = W + 1

func (d Dims) String() string {
	switch d {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	case W:
		return "W"
	}
	return "DimsInvalid"
}

// OtherDim returns the other dimension for 2D X,Y.
func OtherDim(d Dims) Dims {
	switch d {
	case X:
		return Y
	default:
		return X
	}
}
