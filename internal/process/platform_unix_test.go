// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

//go:build unix

package process

import (
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUnixInvoke(t *testing.T) {
	cmd := NewPlatform().Invoke(`printf '%s' "a b"`)
	require.Equal(t, []string{"sh", "-c", `printf '%s' "a b"`}, cmd.Args)

	out, err := cmd.Output()
	require.NoError(t, err)
	require.Equal(t, "a b", string(out))
}

func TestUnixTerminate(t *testing.T) {
	p := NewPlatform()
	cmd := p.Invoke("sleep 30")
	require.NoError(t, cmd.Start())

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	p.Terminate(cmd.Process.Pid)

	select {
	case err := <-done:
		var exitErr *exec.ExitError
		require.ErrorAs(t, err, &exitErr)
		require.Equal(t, "signal: killed", exitErr.ProcessState.String())
	case <-time.After(10 * time.Second):
		t.Fatal("process survived Terminate")
	}
}

func TestUnixTerminateIsBestEffort(t *testing.T) {
	p := NewPlatform()
	p.Terminate(0)
	p.Terminate(-1)
}
