// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

package job

import (
	"errors"

	"github.com/ZSC714725/clipconvert/internal/ffmpeg"
)

var (
	// ErrNotFound covers a missing input file and an input without a
	// parent directory.
	ErrNotFound = ffmpeg.ErrNotFound
	ErrSpawn    = errors.New("spawn failed")
	ErrStream   = errors.New("stream failed")
)
