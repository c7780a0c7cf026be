// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

package ffmpeg

import (
	"sync"
	"time"

	"github.com/ZSC714725/clipconvert/internal/logger"
	"github.com/ZSC714725/clipconvert/internal/process"
)

// FFmpeg builds clip commands and owns the codec table
type FFmpeg interface {
	Command(p Params) (Command, error)
	// Program is used when a job names no program
	Program() string
	ValidateProgram(program string) bool
	Codecs() Codecs
	ReloadCodecs() error
}

// Config for FFmpeg
type Config struct {
	Binary string
	// CodecsFile is a JSON codec document. Empty selects the built-in table.
	CodecsFile       string
	ValidatorProgram Validator
	Platform         process.Platform
	Logger           logger.Logger
	Now              func() time.Time
}

type ffmpeg struct {
	binary     string
	codecsFile string
	validator  Validator
	platform   process.Platform
	logger     logger.Logger
	now        func() time.Time
	codecs     Codecs
	codecsLock sync.RWMutex
}

// New creates FFmpeg. A broken codec document is logged, not returned:
// jobs then run with stream copy.
func New(config Config) FFmpeg {
	f := &ffmpeg{
		binary:     config.Binary,
		codecsFile: config.CodecsFile,
		validator:  config.ValidatorProgram,
		platform:   config.Platform,
		logger:     config.Logger,
		now:        config.Now,
	}

	if f.binary == "" {
		f.binary = "ffmpeg"
	}
	if f.validator == nil {
		f.validator, _ = NewValidator(nil, nil)
	}
	if f.platform == nil {
		f.platform = process.NewPlatform()
	}
	if f.logger == nil {
		f.logger = logger.Nop()
	}
	if f.now == nil {
		f.now = time.Now
	}

	if err := f.ReloadCodecs(); err != nil {
		f.logger.Error("%v, falling back to stream copy", err)
	}
	return f
}

func (f *ffmpeg) Command(p Params) (Command, error) {
	output, err := OutputPath(p.Input, p.Format, f.now())
	if err != nil {
		return Command{}, err
	}

	codec := resolveCodec(f.Codecs(), p.Codec)
	text := CommandLine(p, codec, output)

	return Command{
		Text:   text,
		Output: output,
		Cmd:    f.platform.Invoke(text),
	}, nil
}

func (f *ffmpeg) Program() string {
	return f.binary
}

func (f *ffmpeg) ValidateProgram(program string) bool {
	return f.validator.IsValid(program)
}

func (f *ffmpeg) Codecs() Codecs {
	f.codecsLock.RLock()
	defer f.codecsLock.RUnlock()
	return f.codecs
}

// ReloadCodecs re-reads the codec document. On failure the table is
// emptied so every selector resolves to CopyCodec.
func (f *ffmpeg) ReloadCodecs() error {
	var (
		c   Codecs
		err error
	)
	if f.codecsFile == "" {
		c = BuiltinCodecs()
	} else if c, err = LoadCodecs(f.codecsFile); err != nil {
		c = codecTable{}
	}

	f.codecsLock.Lock()
	f.codecs = c
	f.codecsLock.Unlock()
	return err
}
