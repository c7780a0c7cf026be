// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

package api

import (
	"net/http"
	"strconv"

	"github.com/ZSC714725/clipconvert/internal/ffmpeg"
	"github.com/ZSC714725/clipconvert/internal/job"
	"github.com/gin-gonic/gin"
)

// Handler holds dependencies
type Handler struct {
	ctrl   *job.Controller
	events *job.EventBus
	ffmpeg ffmpeg.FFmpeg
}

// NewHandler creates API handler
func NewHandler(ctrl *job.Controller, events *job.EventBus, ff ffmpeg.FFmpeg) *Handler {
	return &Handler{ctrl: ctrl, events: events, ffmpeg: ff}
}

// Register mounts the job routes on r
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/job", h.StartJob)
	r.GET("/job", h.GetJob)
	r.DELETE("/job", h.CancelJob)
	r.GET("/job/events", h.Events)

	r.GET("/codecs", h.Codecs)
	r.POST("/codecs/reload", h.ReloadCodecs)
}

func errResp(c *gin.Context, code int, msg, detail string) {
	c.JSON(code, ErrorResponse{Code: code, Message: msg, Detail: detail})
}

// StartJob POST /api/v1/job
//
// A job that fails after this point (missing input, spawn failure) is
// reported on the event stream, not in the response.
func (h *Handler) StartJob(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	program := req.Program
	if program == "" {
		program = h.ffmpeg.Program()
	}
	if !h.ffmpeg.ValidateProgram(program) {
		errResp(c, http.StatusBadRequest, "Program not allowed", program)
		return
	}

	id := h.ctrl.Start(ffmpeg.Params{
		Program: program,
		Input:   req.Path,
		Start:   req.StartTime,
		End:     req.EndTime,
		Format:  req.Format,
		Codec:   req.Encode,
		Scale:   req.Scale,
	})

	c.JSON(http.StatusOK, JobResponse{ID: id})
}

// CancelJob DELETE /api/v1/job
func (h *Handler) CancelJob(c *gin.Context) {
	c.JSON(http.StatusOK, CancelResponse{Cancelled: h.ctrl.Cancel()})
}

// GetJob GET /api/v1/job
func (h *Handler) GetJob(c *gin.Context) {
	s := h.ctrl.Status()

	state := JobState{
		ID:      s.JobID,
		State:   string(s.State),
		PID:     s.PID,
		Command: s.Command,
		Output:  s.Output,
		Runtime: int64(s.Duration.Seconds()),
		Memory:  s.Memory,
		CPU:     s.CPU,
	}
	if !s.Started.IsZero() {
		state.Started = s.Started.Unix()
	}

	c.JSON(http.StatusOK, state)
}

// Events GET /api/v1/job/events?since=N
func (h *Handler) Events(c *gin.Context) {
	since, err := strconv.ParseInt(c.DefaultQuery("since", "0"), 10, 64)
	if err != nil || since < 0 {
		errResp(c, http.StatusBadRequest, "Invalid since", c.Query("since"))
		return
	}

	events := h.events.Since(since)
	last := since
	if n := len(events); n > 0 {
		last = events[n-1].Seq
	}

	c.JSON(http.StatusOK, EventsResponse{Last: last, Events: events})
}

// Codecs GET /api/v1/codecs
func (h *Handler) Codecs(c *gin.Context) {
	c.JSON(http.StatusOK, codecsToAPI(h.ffmpeg.Codecs()))
}

// ReloadCodecs POST /api/v1/codecs/reload
func (h *Handler) ReloadCodecs(c *gin.Context) {
	if err := h.ffmpeg.ReloadCodecs(); err != nil {
		errResp(c, http.StatusInternalServerError, "Reload failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, codecsToAPI(h.ffmpeg.Codecs()))
}

func codecsToAPI(codecs ffmpeg.Codecs) []Codec {
	all := codecs.All()
	out := make([]Codec, 0, len(all))
	for _, e := range all {
		out = append(out, Codec{Key: e.Key, Codec: e.Codec})
	}
	return out
}
