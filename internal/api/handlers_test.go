// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/ZSC714725/clipconvert/internal/ffmpeg"
	"github.com/ZSC714725/clipconvert/internal/job"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type noopPlatform struct {
	terminated []int
}

func (p *noopPlatform) Invoke(text string) *exec.Cmd { return exec.Command("true") }
func (p *noopPlatform) Terminate(pid int)            { p.terminated = append(p.terminated, pid) }

type fixture struct {
	router   *gin.Engine
	events   *job.EventBus
	registry *job.Registry
	platform *noopPlatform
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	platform := &noopPlatform{}
	validator, err := ffmpeg.NewValidator(nil, []string{`[;&|]`})
	require.NoError(t, err)
	ff := ffmpeg.New(ffmpeg.Config{Binary: "ffmpeg", ValidatorProgram: validator, Platform: platform})

	events := job.NewEventBus(100)
	registry := job.NewRegistry()
	ctrl, err := job.NewController(job.Config{
		FFmpeg:   ff,
		Sink:     events,
		Platform: platform,
		Registry: registry,
	})
	require.NoError(t, err)
	t.Cleanup(ctrl.Wait)

	r := gin.New()
	NewHandler(ctrl, events, ff).Register(r.Group("/api/v1"))
	return &fixture{router: r, events: events, registry: registry, platform: platform}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestStartJobMissingInputReportsEvent(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/job", JobRequest{
		Path:      filepath.Join(t.TempDir(), "gone.mp4"),
		StartTime: "00:00:00",
		EndTime:   "00:00:10",
		Format:    "mp4",
		Encode:    "h264",
	})
	require.Equal(t, http.StatusOK, w.Code)
	id := decode[JobResponse](t, w).ID
	require.NotEmpty(t, id)

	w = f.do(t, http.MethodGet, "/api/v1/job/events?since=0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[EventsResponse](t, w)
	require.Len(t, resp.Events, 1)
	require.Equal(t, job.KindError, resp.Events[0].Kind)
	require.Equal(t, id, resp.Events[0].JobID)
	require.Contains(t, resp.Events[0].Payload, "not found")
	require.Equal(t, resp.Events[0].Seq, resp.Last)

	w = f.do(t, http.MethodGet, "/api/v1/job/events?since=1", nil)
	require.Empty(t, decode[EventsResponse](t, w).Events)

	w = f.do(t, http.MethodGet, "/api/v1/job", nil)
	state := decode[JobState](t, w)
	require.Equal(t, id, state.ID)
	require.Equal(t, "failed", state.State)
}

func TestStartJobEmptyPathReportsEvent(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/job", JobRequest{Format: "mp4"})
	require.Equal(t, http.StatusOK, w.Code)
	id := decode[JobResponse](t, w).ID

	events := f.events.Since(0)
	require.Len(t, events, 1)
	require.Equal(t, id, events[0].JobID)
	require.Equal(t, job.KindError, events[0].Kind)
	require.Contains(t, events[0].Payload, "not found")
}

func TestStartJobRejects(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/job", map[string]string{"path": "/tmp/a.mp4"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/job", JobRequest{
		Program: "ffmpeg; rm -rf ~",
		Path:    "/tmp/a.mp4",
		Format:  "mp4",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Program not allowed", decode[ErrorResponse](t, w).Message)
	require.Empty(t, f.events.Since(0))
}

func TestCancelJob(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodDelete, "/api/v1/job", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, decode[CancelResponse](t, w).Cancelled)
	require.Empty(t, f.platform.terminated)

	f.registry.Store(31337)
	w = f.do(t, http.MethodDelete, "/api/v1/job", nil)
	require.True(t, decode[CancelResponse](t, w).Cancelled)
	require.Equal(t, []int{31337}, f.platform.terminated)
}

func TestGetJobIdle(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/job", nil)
	require.Equal(t, http.StatusOK, w.Code)
	state := decode[JobState](t, w)
	require.Equal(t, "idle", state.State)
	require.Empty(t, state.ID)
}

func TestEventsInvalidSince(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/job/events?since=abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCodecs(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/codecs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	codecs := decode[[]Codec](t, w)
	require.Equal(t, []Codec{
		{Key: "copy", Codec: "-c copy"},
		{Key: "h264", Codec: "-c:v libx264 -pix_fmt yuv420p -c:a aac"},
		{Key: "h265", Codec: "-c:v libx265 -pix_fmt yuv420p -tag:v hvc1 -c:a aac"},
	}, codecs)

	w = f.do(t, http.MethodPost, "/api/v1/codecs/reload", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode[[]Codec](t, w), 3)
}
