// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package num provides generic functions that apply to all numeric types.
package num

// Signed is a constraint that permits any signed numeric type.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Number is a constraint that permits any numeric type.
type Number interface {
	Signed | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Abs returns the absolute value of the given signed number.
func Abs[T Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// ToBool returns the bool representation of the given number
// (false if zero, true otherwise).
func ToBool[T Number](v T) bool {
	return v != 0
}

// FromBool returns the number representation of the given bool
// (1 if true, 0 otherwise).
func FromBool[T Number](v bool) T {
	if v {
		return 1
	}
	return 0
}
