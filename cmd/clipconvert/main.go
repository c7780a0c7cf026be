// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

package main

import (
	"fmt"
	"os"

	"github.com/ZSC714725/clipconvert/internal/config"
	"github.com/ZSC714725/clipconvert/internal/logger"

	"github.com/spf13/cobra"
)

var (
	cfg *config.Config
	log logger.Logger

	flagConfigFilePath string // value of --config flag
	flagVerbose        bool
)

func main() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFilePath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "debug logging")

	rootCmd.SilenceErrors = true
	rootCmd.PersistentPreRunE = initClipConvert

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newCodecsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "clipconvert: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "clipconvert",
	Short:        "Cut and transcode a clip of a media file with ffmpeg",
	SilenceUsage: true,
}

func initClipConvert(cmd *cobra.Command, _ []string) error {
	cfg = config.Default()
	if flagConfigFilePath != "" {
		var err error
		cfg, err = config.Load(flagConfigFilePath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	level := logger.ParseLevel(cfg.Log.Level)
	if flagVerbose {
		level = logger.LevelDebug
	}
	log = logger.New("clipconvert", level)
	return nil
}
