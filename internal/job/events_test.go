// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

package job

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	require.Equal(t, "progress", KindProgress.String())
	require.Equal(t, "error", KindError.String())
	require.Equal(t, "finish", KindFinish.String())
	require.Equal(t, "kind(9)", Kind(9).String())
}

func TestEventJSON(t *testing.T) {
	data, err := json.Marshal(Event{Seq: 3, JobID: "abc", Kind: KindFinish, Payload: "exit status 0"})
	require.NoError(t, err)
	require.Contains(t, string(data), `"kind":"finish"`)

	var e Event
	require.NoError(t, json.Unmarshal(data, &e))
	require.Equal(t, KindFinish, e.Kind)
	require.Equal(t, "abc", e.JobID)

	require.Error(t, json.Unmarshal([]byte(`{"kind":"bogus"}`), &e))
}

func TestEventBusSince(t *testing.T) {
	b := NewEventBus(10)
	require.Empty(t, b.Since(0))
	require.Zero(t, b.Last())

	b.Emit(Event{Kind: KindProgress, Payload: "one"})
	b.Emit(Event{Kind: KindProgress, Payload: "two"})
	b.Emit(Event{Kind: KindFinish, Payload: "three"})

	all := b.Since(0)
	require.Len(t, all, 3)
	require.Equal(t, int64(1), all[0].Seq)
	require.False(t, all[0].Timestamp.IsZero())

	tail := b.Since(2)
	require.Len(t, tail, 1)
	require.Equal(t, "three", tail[0].Payload)
	require.Equal(t, int64(3), b.Last())
}

func TestEventBusBounded(t *testing.T) {
	b := NewEventBus(2)
	for _, p := range []string{"a", "b", "c"} {
		b.Emit(Event{Kind: KindProgress, Payload: p})
	}

	events := b.Since(0)
	require.Len(t, events, 2)
	require.Equal(t, "b", events[0].Payload)
	require.Equal(t, int64(3), events[1].Seq)
}

func TestSinkFunc(t *testing.T) {
	var got []Event
	var s Sink = SinkFunc(func(e Event) { got = append(got, e) })
	s.Emit(Event{Payload: "x"})
	require.Len(t, got, 1)
}

func TestEventBusWrapsAround(t *testing.T) {
	b := NewEventBus(3)
	for i := 0; i < 7; i++ {
		b.Emit(Event{Kind: KindProgress})
	}

	var seqs []int64
	for _, e := range b.Since(0) {
		seqs = append(seqs, e.Seq)
	}
	require.Equal(t, []int64{5, 6, 7}, seqs)

	require.Len(t, b.Since(5), 2)
	require.Equal(t, int64(7), b.Since(6)[0].Seq)
	require.Empty(t, b.Since(7))
	require.Empty(t, b.Since(100))
}
