// Copyright 2023 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !update

package imagex

import "os"

// updateTestImages is whether to update test images instead of comparing
// against them, as controlled by the environment variable
// "CORE_UPDATE_TESTDATA" being set to "true".
var updateTestImages = os.Getenv("CORE_UPDATE_TESTDATA") == "true"
