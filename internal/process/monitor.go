// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

package process

import (
	"sync"

	gopsutilprocess "github.com/shirou/gopsutil/v3/process"
)

// Monitor samples CPU and memory of the running job. Start switches it
// to pid; Stop(pid) detaches only if pid is still the one tracked, so an
// older job ending does not blank a newer one.
type Monitor interface {
	Start(pid int) error
	Stop(pid int)
	Current() (cpu float64, memory uint64)
}

// sysMonitor 使用 gopsutil 采集进程 CPU 和内存
type sysMonitor struct {
	mu   sync.RWMutex
	pid  int
	proc *gopsutilprocess.Process
}

// NewMonitor returns a gopsutil backed Monitor
func NewMonitor() Monitor {
	return &sysMonitor{}
}

func (m *sysMonitor) Start(pid int) error {
	proc, err := gopsutilprocess.NewProcess(int32(pid))
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.pid, m.proc = pid, proc
	m.mu.Unlock()
	return nil
}

func (m *sysMonitor) Stop(pid int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.proc != nil && m.pid == pid {
		m.pid, m.proc = 0, nil
	}
}

func (m *sysMonitor) Current() (cpu float64, memory uint64) {
	m.mu.RLock()
	proc := m.proc
	m.mu.RUnlock()
	if proc == nil {
		return 0, 0
	}
	if pct, err := proc.CPUPercent(); err == nil {
		cpu = pct
	}
	if info, err := proc.MemoryInfo(); err == nil && info != nil {
		memory = info.RSS
	}
	return cpu, memory
}

type nullMonitor struct{}

// NewNullMonitor returns a Monitor that reports nothing
func NewNullMonitor() Monitor {
	return nullMonitor{}
}

func (nullMonitor) Start(pid int) error        { return nil }
func (nullMonitor) Stop(pid int)               {}
func (nullMonitor) Current() (float64, uint64) { return 0, 0 }
