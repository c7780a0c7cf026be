// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

// Package job runs one clip job at a time: it spawns the transcoder,
// forwards its stderr as progress events and lets the caller kill it.
package job

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/ZSC714725/clipconvert/internal/ffmpeg"
	"github.com/ZSC714725/clipconvert/internal/logger"
	"github.com/ZSC714725/clipconvert/internal/metrics"
	"github.com/ZSC714725/clipconvert/internal/process"

	"github.com/lithammer/shortuuid/v4"
)

// State of the most recently started job
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSpawning   State = "spawning"
	StateRunning    State = "running"
	StateDraining   State = "draining"
	StateFinished   State = "finished"
	StateFailed     State = "failed"
)

// eventQueue is the per-job buffer between the worker and the sink
const eventQueue = 64

// Status is a snapshot of the most recently started job
type Status struct {
	JobID    string
	State    State
	PID      int
	Command  string
	Output   string
	Started  time.Time
	Duration time.Duration
	CPU      float64
	Memory   uint64
}

// Config for a Controller. Only FFmpeg and Sink are required.
type Config struct {
	FFmpeg   ffmpeg.FFmpeg
	Sink     Sink
	Platform process.Platform
	Registry *Registry
	Monitor  process.Monitor
	Logger   logger.Logger
	// Stat checks the input before anything is built
	Stat func(name string) (os.FileInfo, error)
}

// Controller starts clip jobs and cancels the running one
type Controller struct {
	ffmpeg   ffmpeg.FFmpeg
	sink     Sink
	platform process.Platform
	registry *Registry
	monitor  process.Monitor
	logger   logger.Logger
	stat     func(name string) (os.FileInfo, error)
	wait     func(cmd *exec.Cmd) error

	current struct {
		status Status
		lock   sync.Mutex
	}
	wg sync.WaitGroup
}

// NewController creates a Controller
func NewController(config Config) (*Controller, error) {
	if config.FFmpeg == nil {
		return nil, fmt.Errorf("no ffmpeg given")
	}
	if config.Sink == nil {
		return nil, fmt.Errorf("no event sink given")
	}

	c := &Controller{
		ffmpeg:   config.FFmpeg,
		sink:     config.Sink,
		platform: config.Platform,
		registry: config.Registry,
		monitor:  config.Monitor,
		logger:   config.Logger,
		stat:     config.Stat,
		wait:     (*exec.Cmd).Wait,
	}

	if c.platform == nil {
		c.platform = process.NewPlatform()
	}
	if c.registry == nil {
		c.registry = NewRegistry()
	}
	if c.monitor == nil {
		c.monitor = process.NewNullMonitor()
	}
	if c.logger == nil {
		c.logger = logger.Nop()
	}
	if c.stat == nil {
		c.stat = os.Stat
	}

	c.current.status.State = StateIdle
	return c, nil
}

// Start validates p, builds the command and hands it to a worker
// goroutine. It does not block on the transcoder. Failures are reported
// to the sink as error events, never returned. The job id is returned
// so the caller can match events.
func (c *Controller) Start(p ffmpeg.Params) string {
	id := shortuuid.New()
	if p.Program == "" {
		p.Program = c.ffmpeg.Program()
	}

	metrics.JobsStartedTotal.Inc()
	c.begin(id)

	if _, err := c.stat(p.Input); err != nil {
		c.reject(id, "not_found", fmt.Errorf("%w: %s", ErrNotFound, p.Input))
		return id
	}

	cmd, err := c.ffmpeg.Command(p)
	if err != nil {
		c.reject(id, "build", err)
		return id
	}

	c.update(id, func(s *Status) {
		s.State = StateSpawning
		s.Command = cmd.Text
		s.Output = cmd.Output
	})
	c.logger.Debug("job %s: %s", id, cmd.Text)

	c.wg.Add(1)
	go c.run(id, cmd)
	return id
}

// Cancel kills the registered job, if any. It emits nothing; the job's
// own finish or error event reports the outcome.
func (c *Controller) Cancel() bool {
	pid, ok := c.registry.Take()
	if !ok {
		return false
	}

	c.logger.Info("cancel: terminating pid %d", pid)
	metrics.JobCancellationsTotal.Inc()
	c.platform.Terminate(pid)
	return true
}

// Wait blocks until every started worker has delivered its last event
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Status returns a snapshot of the most recently started job
func (c *Controller) Status() Status {
	c.current.lock.Lock()
	s := c.current.status
	c.current.lock.Unlock()

	if !s.Started.IsZero() {
		s.Duration = time.Since(s.Started)
	}
	if s.State == StateRunning || s.State == StateDraining {
		s.CPU, s.Memory = c.monitor.Current()
	}
	return s
}

func (c *Controller) run(id string, cmd ffmpeg.Command) {
	defer c.wg.Done()

	events := make(chan Event, eventQueue)
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		for e := range events {
			c.sink.Emit(e)
		}
	}()
	defer func() {
		close(events)
		<-forwarded
	}()

	emit := func(kind Kind, payload string) {
		events <- Event{Timestamp: time.Now().UTC(), JobID: id, Kind: kind, Payload: payload}
	}
	fail := func(kind string, err error) {
		metrics.JobErrorsTotal.WithLabelValues(kind).Inc()
		metrics.JobsCompletedTotal.WithLabelValues(metrics.ResultFailed).Inc()
		c.logger.Error("job %s: %v", id, err)
		c.update(id, func(s *Status) { s.State = StateFailed })
		emit(KindError, err.Error())
	}

	stderr, err := cmd.Cmd.StderrPipe()
	if err != nil {
		fail("spawn", fmt.Errorf("%w: %w", ErrSpawn, err))
		return
	}
	var stdout bytes.Buffer
	cmd.Cmd.Stdout = &stdout

	if err := cmd.Cmd.Start(); err != nil {
		fail("spawn", fmt.Errorf("%w: %w", ErrSpawn, err))
		return
	}

	pid := cmd.Cmd.Process.Pid
	started := time.Now()
	c.registry.Store(pid)
	metrics.JobRunning.Inc()
	c.update(id, func(s *Status) {
		s.State = StateRunning
		s.PID = pid
		s.Started = started
	})
	c.logger.Info("job %s: started pid %d", id, pid)

	if err := c.monitor.Start(pid); err != nil {
		c.logger.Debug("job %s: monitor pid %d: %v", id, pid, err)
	}

	c.update(id, func(s *Status) { s.State = StateDraining })
	rest, err := process.Split(stderr, func(line string) {
		metrics.JobProgressLinesTotal.Inc()
		emit(KindProgress, line)
	})
	if err != nil {
		c.logger.Error("job %s: reading stderr: %v", id, err)
	}
	if rest != "" {
		c.logger.Debug("job %s: unterminated output dropped: %q", id, rest)
	}

	err = c.wait(cmd.Cmd)
	c.monitor.Stop(pid)
	metrics.JobRunning.Dec()
	metrics.JobDuration.Observe(time.Since(started).Seconds())
	c.registry.Release(pid)

	// a non-zero exit or a kill is still a completed process
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fail("stream", fmt.Errorf("%w: %w", ErrStream, err))
		return
	}

	metrics.JobsCompletedTotal.WithLabelValues(metrics.ResultFinished).Inc()
	c.update(id, func(s *Status) { s.State = StateFinished })
	c.logger.Info("job %s: %s", id, cmd.Cmd.ProcessState)

	emit(KindFinish, exitSummary(cmd.Cmd.ProcessState, stdout.String()))
	emit(KindFinish, cmd.Text)
}

// reject reports a job that never reached the worker. It runs on the
// caller's goroutine, so the sink is called directly.
func (c *Controller) reject(id, kind string, err error) {
	metrics.JobErrorsTotal.WithLabelValues(kind).Inc()
	metrics.JobsCompletedTotal.WithLabelValues(metrics.ResultFailed).Inc()
	c.logger.Error("job %s: %v", id, err)
	c.update(id, func(s *Status) { s.State = StateFailed })
	c.sink.Emit(Event{Timestamp: time.Now().UTC(), JobID: id, Kind: KindError, Payload: err.Error()})
}

func (c *Controller) begin(id string) {
	c.current.lock.Lock()
	defer c.current.lock.Unlock()

	if prev := c.current.status; prev.State == StateRunning || prev.State == StateDraining {
		c.logger.Info("job %s replaces running job %s", id, prev.JobID)
	}
	c.current.status = Status{JobID: id, State: StateValidating}
}

// update applies fn while id is still the current job
func (c *Controller) update(id string, fn func(s *Status)) {
	c.current.lock.Lock()
	defer c.current.lock.Unlock()
	if c.current.status.JobID == id {
		fn(&c.current.status)
	}
}

func exitSummary(state *os.ProcessState, stdout string) string {
	return fmt.Sprintf("%s, stdout: %q", state, stdout)
}
