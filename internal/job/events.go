// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

package job

import (
	"fmt"
	"sync"
	"time"
)

// Kind classifies an Event
type Kind int

const (
	KindProgress Kind = iota
	KindError
	KindFinish
)

func (k Kind) String() string {
	switch k {
	case KindProgress:
		return "progress"
	case KindError:
		return "error"
	case KindFinish:
		return "finish"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "progress":
		*k = KindProgress
	case "error":
		*k = KindError
	case "finish":
		*k = KindFinish
	default:
		return fmt.Errorf("unknown event kind %q", text)
	}
	return nil
}

// Event is one notification about a job. Payload is a diagnostic line
// for progress, an error description, or a completion summary.
type Event struct {
	Seq       int64     `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
	JobID     string    `json:"job_id"`
	Kind      Kind      `json:"kind"`
	Payload   string    `json:"payload"`
}

// Sink receives job events. Emit must return quickly; it runs on the
// job's forwarding goroutine.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// EventBus keeps the newest events of all jobs in a fixed ring. Sequence
// numbers are contiguous, so a reader resumes with Since(last).
type EventBus struct {
	lock sync.RWMutex
	ring []Event
	head int   // 最旧事件的下标
	size int   // 环中事件数
	seq  int64 // 最新事件的序号
}

// NewEventBus returns an EventBus holding at most capacity events
// (500 when capacity is not positive)
func NewEventBus(capacity int) *EventBus {
	if capacity <= 0 {
		capacity = 500
	}
	return &EventBus{ring: make([]Event, capacity)}
}

// Emit numbers e and stores it, evicting the oldest event when full
func (b *EventBus) Emit(e Event) {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.seq++
	e.Seq = b.seq
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	if b.size < len(b.ring) {
		b.ring[(b.head+b.size)%len(b.ring)] = e
		b.size++
		return
	}
	b.ring[b.head] = e
	b.head = (b.head + 1) % len(b.ring)
}

// Since returns the retained events numbered after seq, oldest first
func (b *EventBus) Since(seq int64) []Event {
	b.lock.RLock()
	defer b.lock.RUnlock()

	oldest := b.seq - int64(b.size) + 1
	skip := 0
	if seq >= oldest {
		skip = int(seq - oldest + 1)
	}
	if skip >= b.size {
		return []Event{}
	}

	out := make([]Event, 0, b.size-skip)
	for i := skip; i < b.size; i++ {
		out = append(out, b.ring[(b.head+i)%len(b.ring)])
	}
	return out
}

// Last returns the sequence of the newest event, 0 if none
func (b *EventBus) Last() int64 {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.seq
}
