// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

//go:build unix

package process

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

type unixPlatform struct{}

func newPlatform() Platform {
	return &unixPlatform{}
}

// Invoke wraps text as `sh -c text` in a new process group so that
// Terminate also reaches whatever the shell forked.
func (p *unixPlatform) Invoke(text string) *exec.Cmd {
	cmd := exec.Command("sh", "-c", text)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	return cmd
}

// Terminate sends SIGKILL to the process group led by pid, then to pid
// itself in case it never became a group leader.
func (p *unixPlatform) Terminate(pid int) {
	if pid <= 0 {
		return
	}
	if err := unix.Kill(-pid, unix.SIGKILL); err != nil {
		_ = unix.Kill(pid, unix.SIGKILL)
	}
}
