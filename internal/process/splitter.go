// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

package process

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ChunkSize is how much Split reads from the stream at a time
const ChunkSize = 4096

// Split reads r until EOF or a read error and calls fn for every
// non-empty line. Both '\r' and '\n' terminate a line, FFmpeg rewrites
// its progress line with a bare '\r'.
//
// Invalid UTF-8 is replaced with U+FFFD. Text after the last terminator
// is not passed to fn; it is returned as rest. err is nil on EOF.
func Split(r io.Reader, fn func(line string)) (rest string, err error) {
	src := transform.NewReader(r, unicode.UTF8.NewDecoder())
	buf := make([]byte, ChunkSize)

	var partial string
	for {
		n, err := src.Read(buf)
		if n > 0 {
			partial = splitLines(partial+string(buf[:n]), fn)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return partial, nil
			}
			return partial, err
		}
	}
}

// splitLines hands every complete line in s to fn and returns what is left
func splitLines(s string, fn func(line string)) string {
	for {
		i := strings.IndexAny(s, "\r\n")
		if i < 0 {
			return s
		}
		if i > 0 {
			fn(s[:i])
		}
		s = s[i+1:]
	}
}
