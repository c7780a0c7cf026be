// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

package ffmpeg

import (
	"fmt"
	"os/exec"
	"strings"
)

// Params of one clip job. Times and scale are not validated, they are
// substituted into the command line verbatim.
type Params struct {
	Program string
	Input   string
	Start   string
	End     string
	Format  string
	Codec   string
	Scale   string
}

// Command is a built job command
type Command struct {
	// Text is the full command line, also reported back to the caller
	// once the job finishes.
	Text   string
	Output string
	// Cmd runs Text through the platform shell. It is single-use and
	// not started; stdout and stderr are left for the spawner to wire.
	Cmd *exec.Cmd
}

// CommandLine assembles
//
//	<program> -ss <start> -to <end> -i "<input>" <codec> [-vf scale="<scale>"] "<output>"
func CommandLine(p Params, codec, output string) string {
	parts := []string{
		p.Program,
		"-ss", p.Start,
		"-to", p.End,
		"-i", quote(p.Input),
		codec,
	}
	if p.Scale != "" {
		parts = append(parts, fmt.Sprintf("-vf scale=%s", quote(p.Scale)))
	}
	parts = append(parts, quote(output))
	return strings.Join(parts, " ")
}

func quote(s string) string {
	return `"` + s + `"`
}
