// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具
//
// Package process wraps the OS-specific parts of running a transcoder:
// shell invocation, forced termination, stderr line splitting and
// resource sampling.

package process

import "os/exec"

// Platform hides how a command line is handed to the OS and how a
// running process is forcibly stopped.
type Platform interface {
	// Invoke returns an unstarted command running text through the
	// native command interpreter.
	Invoke(text string) *exec.Cmd
	// Terminate force-kills pid. Failures are swallowed.
	Terminate(pid int)
}

// NewPlatform returns the Platform for the running OS
func NewPlatform() Platform {
	return newPlatform()
}
