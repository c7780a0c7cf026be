// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

//go:build windows

package process

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

type windowsPlatform struct{}

func newPlatform() Platform {
	return &windowsPlatform{}
}

// Invoke wraps text as `cmd /C text` without a console window. The raw
// command line is passed as-is, exec's argument quoting would mangle the
// quoted paths inside text.
func (p *windowsPlatform) Invoke(text string) *exec.Cmd {
	cmd := exec.Command("cmd")
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
		CmdLine:       "cmd /C " + text,
	}
	return cmd
}

// Terminate opens pid with terminate rights and kills it.
func (p *windowsPlatform) Terminate(pid int) {
	if pid <= 0 {
		return
	}
	h, err := windows.OpenProcess(windows.PROCESS_TERMINATE, false, uint32(pid))
	if err != nil {
		return
	}
	defer windows.CloseHandle(h)
	_ = windows.TerminateProcess(h, 1)
}
