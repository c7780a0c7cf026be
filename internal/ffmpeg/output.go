// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

package ffmpeg

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound is returned when an output location cannot be derived
var ErrNotFound = errors.New("not found")

const (
	timestampLayout = "20060102_150405"
	fallbackStem    = "output"
)

// OutputPath places the result next to input as
// <stem>_<YYYYMMDD>_<HHMMSS>.<format>.
func OutputPath(input, format string, now time.Time) (string, error) {
	dir, ok := parentDir(input)
	if !ok {
		return "", fmt.Errorf("%w: no parent directory: %q", ErrNotFound, input)
	}

	name := fmt.Sprintf("%s_%s.%s", fileStem(input), now.Format(timestampLayout), format)
	return filepath.Join(dir, name), nil
}

// parentDir fails for an empty path and for a filesystem root
func parentDir(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	dir := filepath.Dir(path)
	if dir == filepath.Clean(path) {
		return "", false
	}
	return dir, true
}

func fileStem(path string) string {
	base := filepath.Base(path)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return fallbackStem
	}

	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		// dotfile like ".clip", the whole name is the stem
		return base
	}
	return stem
}
