// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

package logger

import (
	"log"
	"os"
	"strings"
)

// Logger provides a simple logging interface
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// Level is the minimum severity a Logger writes
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

// ParseLevel maps a config string to a Level. LOG_LEVEL in the environment wins.
func ParseLevel(s string) Level {
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		s = env
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

type defaultLogger struct {
	prefix string
	level  Level
}

// New returns a Logger writing through the standard log package
func New(prefix string, level Level) Logger {
	if prefix != "" {
		prefix += ": "
	}
	return &defaultLogger{prefix: prefix, level: level}
}

// With returns a logger whose prefix is extended by component
func With(l Logger, component string) Logger {
	if d, ok := l.(*defaultLogger); ok {
		return &defaultLogger{prefix: d.prefix + component + ": ", level: d.level}
	}
	return l
}

func (l *defaultLogger) Info(format string, args ...interface{}) {
	if l.level <= LevelInfo {
		log.Printf("[INFO] "+l.prefix+format, args...)
	}
}

func (l *defaultLogger) Error(format string, args ...interface{}) {
	log.Printf("[ERROR] "+l.prefix+format, args...)
}

func (l *defaultLogger) Debug(format string, args ...interface{}) {
	if l.level <= LevelDebug {
		log.Printf("[DEBUG] "+l.prefix+format, args...)
	}
}

type nopLogger struct{}

// Nop discards everything
func Nop() Logger { return nopLogger{} }

func (nopLogger) Info(format string, args ...interface{})  {}
func (nopLogger) Error(format string, args ...interface{}) {}
func (nopLogger) Debug(format string, args ...interface{}) {}
