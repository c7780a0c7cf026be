// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/ZSC714725/clipconvert/internal/ffmpeg"
	"github.com/ZSC714725/clipconvert/internal/job"
	"github.com/ZSC714725/clipconvert/internal/logger"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var errJobFailed = errors.New("job failed")

const cancelRetry = 50 * time.Millisecond

func newRunCmd() *cobra.Command {
	var p ffmpeg.Params

	cmd := &cobra.Command{
		Use:   "run",
		Short: "run one clip job and print its events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			// a second interrupt gets the default handler and ends the process
			context.AfterFunc(ctx, stop)
			return runJob(ctx, p, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVar(&p.Input, "input", "", "source media file")
	f.StringVar(&p.Start, "start", "00:00:00", "clip start (-ss)")
	f.StringVar(&p.End, "end", "", "clip end (-to)")
	f.StringVar(&p.Format, "format", "mp4", "output container extension")
	f.StringVar(&p.Codec, "encode", "copy", "codec key")
	f.StringVar(&p.Scale, "scale", "", "scale filter argument, e.g. 1280:-2")
	f.StringVar(&p.Program, "program", "", "transcoder program (overrides config)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

// runJob starts p and blocks until its last event. Progress goes to
// stderr, finish and error payloads to stdout. A cancelled ctx kills
// the job; the job still reports its own finish event.
func runJob(ctx context.Context, p ffmpeg.Params, stdout, stderr io.Writer) error {
	validator, err := ffmpeg.NewValidator(cfg.FFmpeg.Access.Program.Allow, cfg.FFmpeg.Access.Program.Block)
	if err != nil {
		return err
	}
	ff := ffmpeg.New(ffmpeg.Config{
		Binary:           cfg.FFmpeg.Path,
		CodecsFile:       cfg.FFmpeg.Codecs,
		ValidatorProgram: validator,
		Logger:           logger.With(log, "ffmpeg"),
	})
	if p.Program != "" && !ff.ValidateProgram(p.Program) {
		return fmt.Errorf("program not allowed: %s", p.Program)
	}

	var failed atomic.Bool
	sink := job.SinkFunc(func(e job.Event) {
		switch e.Kind {
		case job.KindProgress:
			fmt.Fprintln(stderr, e.Payload)
		case job.KindError:
			failed.Store(true)
			fmt.Fprintf(stdout, "error: %s\n", e.Payload)
		case job.KindFinish:
			fmt.Fprintf(stdout, "finish: %s\n", e.Payload)
		}
	})

	ctrl, err := job.NewController(job.Config{
		FFmpeg: ff,
		Sink:   sink,
		Logger: logger.With(log, "job"),
	})
	if err != nil {
		return err
	}

	id := ctrl.Start(p)
	log.Debug("started job %s", id)

	done := make(chan struct{})
	g := new(errgroup.Group)
	g.Go(func() error {
		ctrl.Wait()
		close(done)
		return nil
	})
	g.Go(func() error {
		select {
		case <-done:
		case <-ctx.Done():
			cancelUntilDone(ctrl, done)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if failed.Load() {
		return errJobFailed
	}
	return nil
}

// cancelUntilDone retries Cancel while the job is still between spawn and
// registration, then waits for its last event.
func cancelUntilDone(ctrl *job.Controller, done <-chan struct{}) {
	tick := time.NewTicker(cancelRetry)
	defer tick.Stop()
	for !ctrl.Cancel() {
		log.Debug("job not registered yet, retrying cancel")
		select {
		case <-done:
			return
		case <-tick.C:
		}
	}
	<-done
}
