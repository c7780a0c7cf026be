// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

// Package metrics holds the Prometheus collectors for clip jobs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Job results used as the "result" label
const (
	ResultFinished = "finished"
	ResultFailed   = "failed"
)

var (
	JobsStartedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clipconvert_jobs_started_total",
			Help: "Total number of jobs handed to the controller",
		},
	)

	JobsCompletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clipconvert_jobs_completed_total",
			Help: "Total number of jobs that reached a terminal state",
		},
		[]string{"result"},
	)

	JobErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clipconvert_job_errors_total",
			Help: "Total number of job errors by kind",
		},
		[]string{"kind"}, // "not_found", "spawn", "stream", "build"
	)

	JobCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clipconvert_job_cancellations_total",
			Help: "Total number of cancel requests that targeted a running job",
		},
	)

	JobProgressLinesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clipconvert_job_progress_lines_total",
			Help: "Total number of diagnostic lines forwarded as progress",
		},
	)

	JobRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "clipconvert_job_running",
			Help: "Number of spawned transcoder processes that have not exited",
		},
	)

	JobDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clipconvert_job_duration_seconds",
			Help:    "Wall time from spawn to exit",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600, 1800},
		},
	)
)
