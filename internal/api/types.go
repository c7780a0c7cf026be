// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

package api

import "github.com/ZSC714725/clipconvert/internal/job"

// JobRequest for POST /job
type JobRequest struct {
	Program   string `json:"program"`
	Path      string `json:"path"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Format    string `json:"format" binding:"required"`
	Encode    string `json:"encode"`
	Scale     string `json:"scale"`
}

// JobResponse carries the id events will be tagged with
type JobResponse struct {
	ID string `json:"id"`
}

// CancelResponse for DELETE /job
type CancelResponse struct {
	Cancelled bool `json:"cancelled"`
}

// JobState for GET /job
type JobState struct {
	ID      string  `json:"id"`
	State   string  `json:"exec"`
	PID     int     `json:"pid"`
	Command string  `json:"command"`
	Output  string  `json:"output"`
	Started int64   `json:"started_at"`
	Runtime int64   `json:"runtime_seconds"`
	Memory  uint64  `json:"memory_bytes"`
	CPU     float64 `json:"cpu_usage"`
}

// EventsResponse for GET /job/events
type EventsResponse struct {
	Last   int64       `json:"last"`
	Events []job.Event `json:"events"`
}

// Codec in API format
type Codec struct {
	Key   string `json:"key"`
	Codec string `json:"codec"`
}

// ErrorResponse for API errors
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}
