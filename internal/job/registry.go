// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

package job

import "sync"

// Registry is the single slot holding the pid of the running job. The
// controller fills it after spawn; cancellation takes it.
type Registry struct {
	mu  sync.Mutex
	pid int
	ok  bool
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Store overwrites the slot
func (r *Registry) Store(pid int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pid, r.ok = pid, true
}

// Take empties the slot and returns what it held
func (r *Registry) Take() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pid, ok := r.pid, r.ok
	r.pid, r.ok = 0, false
	return pid, ok
}

// Release empties the slot only if it still holds pid, so a finished
// job never clears the pid of the job that replaced it.
func (r *Registry) Release(pid int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ok || r.pid != pid {
		return false
	}
	r.pid, r.ok = 0, false
	return true
}

// Current reads the slot without changing it
func (r *Registry) Current() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pid, r.ok
}
