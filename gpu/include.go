// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"cogentcore.org/gpulearn/base/stringsx"
)

// IncludeFS processes #include "file" statements in
// the given code string, using the given file system
// and default dir to locate the included files.
// Includes within included files are processed too,
// and each file is included at most once.
func IncludeFS(fsys fs.FS, dir, code string) string {
	return includeFS(fsys, dir, code, map[string]bool{})
}

func includeFS(fsys fs.FS, dir, code string, done map[string]bool) string {
	fl := stringsx.SplitLines(code)
	nl := len(fl)
	for li := nl - 1; li >= 0; li-- {
		ln := fl[li]
		if !strings.HasPrefix(ln, `#include "`) {
			continue
		}
		fn := ln[10:]
		qi := strings.Index(fn, `"`)
		if qi < 0 {
			slog.Error("IncludeFS: malformed #include: no final quote")
			continue
		}
		fname := fn[:qi]
		used := fname
		b, err := fs.ReadFile(fsys, fname)
		if err != nil {
			used = path.Join(dir, fname)
			b, err = fs.ReadFile(fsys, used)
			if err != nil {
				slog.Error("IncludeFS: could not find include", "file", fname, "dir", dir)
				continue
			}
		}
		fl[li] = "// " + ln
		if done[used] {
			continue
		}
		done[used] = true
		ol := stringsx.SplitLines(includeFS(fsys, dir, string(b), done))
		fl = slices.Insert(fl, li+1, ol...)
	}
	return strings.Join(fl, "\n")
}
