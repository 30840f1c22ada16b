// Copyright 2023 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build update

package imagex

// updateTestImages is whether to update test images instead of comparing
// against them, as controlled by the build tag "update".
const updateTestImages = true
