// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/ZSC714725/clipconvert/internal/config"
	"github.com/ZSC714725/clipconvert/internal/ffmpeg"
	"github.com/ZSC714725/clipconvert/internal/logger"

	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) {
	t.Helper()
	cfg = config.Default()
	log = logger.Nop()
}

func TestRunJobMissingInput(t *testing.T) {
	setup(t)

	var stdout, stderr bytes.Buffer
	err := runJob(context.Background(), ffmpeg.Params{
		Input:  filepath.Join(t.TempDir(), "missing.mp4"),
		Start:  "00:00:00",
		End:    "00:00:01",
		Format: "mp4",
	}, &stdout, &stderr)
	require.ErrorIs(t, err, errJobFailed)
	require.Contains(t, stdout.String(), "error: not found")
	require.Empty(t, stderr.String())
}

func TestRunJobBlockedProgram(t *testing.T) {
	setup(t)
	cfg.FFmpeg.Access.Program.Block = []string{"rm"}

	var stdout, stderr bytes.Buffer
	err := runJob(context.Background(), ffmpeg.Params{Program: "rm", Input: "x"}, &stdout, &stderr)
	require.ErrorContains(t, err, "program not allowed")
	require.Empty(t, stdout.String())
}

func TestRunJobFakeTranscoder(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script")
	}
	setup(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "in.mp4")
	require.NoError(t, os.WriteFile(input, nil, 0o644))
	script := filepath.Join(dir, "fake-ffmpeg")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho 'frame=1' >&2\necho 'frame=2' >&2\n"), 0o755))

	var stdout, stderr bytes.Buffer
	err := runJob(context.Background(), ffmpeg.Params{
		Program: script,
		Input:   input,
		Start:   "00:00:00",
		End:     "00:00:01",
		Format:  "mkv",
	}, &stdout, &stderr)
	require.NoError(t, err)
	require.Equal(t, "frame=1\nframe=2\n", stderr.String())
	require.Contains(t, stdout.String(), "finish: exit status 0")
	require.Contains(t, stdout.String(), "-c copy")
}

func TestRunJobCancelledBeforeRegistration(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script")
	}
	setup(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "in.mp4")
	require.NoError(t, os.WriteFile(input, nil, 0o644))
	script := filepath.Join(dir, "fake-ffmpeg")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexec sleep 30\n"), 0o755))

	// 任务启动前已取消, Cancel 需要重试到 pid 注册为止
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	start := time.Now()
	err := runJob(ctx, ffmpeg.Params{Program: script, Input: input, Format: "mp4"}, &stdout, &stderr)
	require.NoError(t, err)
	require.Less(t, time.Since(start), 10*time.Second)
	require.Contains(t, stdout.String(), "finish: signal: killed")
}

func TestCodecsCommand(t *testing.T) {
	setup(t)

	var out bytes.Buffer
	cmd := newCodecsCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "KEY")
	require.Contains(t, out.String(), "libx264")
}
