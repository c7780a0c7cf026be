// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

package main

import (
	"flag"
	"log"

	"github.com/ZSC714725/clipconvert/internal/api"
	"github.com/ZSC714725/clipconvert/internal/config"
	"github.com/ZSC714725/clipconvert/internal/ffmpeg"
	"github.com/ZSC714725/clipconvert/internal/job"
	"github.com/ZSC714725/clipconvert/internal/logger"
	"github.com/ZSC714725/clipconvert/internal/process"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	bind := flag.String("bind", "", "Bind address (overrides config)")
	ffmpegBin := flag.String("ffmpeg", "", "FFmpeg binary path (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Load config: %v", err)
		}
	}

	bindAddr := cfg.Server.Bind
	if *bind != "" {
		bindAddr = *bind
	}
	ffmpegPath := cfg.FFmpeg.Path
	if *ffmpegBin != "" {
		ffmpegPath = *ffmpegBin
	}

	l := logger.New("clipconvert", logger.ParseLevel(cfg.Log.Level))

	validator, err := ffmpeg.NewValidator(cfg.FFmpeg.Access.Program.Allow, cfg.FFmpeg.Access.Program.Block)
	if err != nil {
		log.Fatalf("Program access: %v", err)
	}

	platform := process.NewPlatform()
	ff := ffmpeg.New(ffmpeg.Config{
		Binary:           ffmpegPath,
		CodecsFile:       cfg.FFmpeg.Codecs,
		ValidatorProgram: validator,
		Platform:         platform,
		Logger:           logger.With(l, "ffmpeg"),
	})

	events := job.NewEventBus(cfg.Events.Max)
	ctrl, err := job.NewController(job.Config{
		FFmpeg:   ff,
		Sink:     events,
		Platform: platform,
		Monitor:  process.NewMonitor(),
		Logger:   logger.With(l, "job"),
	})
	if err != nil {
		log.Fatalf("Job controller: %v", err)
	}

	handler := api.NewHandler(ctrl, events, ff)

	r := gin.Default()
	r.Use(cors.Default())

	handler.Register(r.Group("/api/v1"))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.Printf("ClipConvert listening on %s", bindAddr)
	if err := r.Run(bindAddr); err != nil {
		log.Fatalf("Server: %v", err)
	}
}
