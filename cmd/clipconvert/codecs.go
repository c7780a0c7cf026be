// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/ZSC714725/clipconvert/internal/ffmpeg"

	"github.com/spf13/cobra"
)

func newCodecsCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "codecs",
		Short: "list the codec table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				path = cfg.FFmpeg.Codecs
			}

			codecs := ffmpeg.BuiltinCodecs()
			if path != "" {
				var err error
				if codecs, err = ffmpeg.LoadCodecs(path); err != nil {
					return err
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tARGUMENTS")
			for _, c := range codecs.All() {
				fmt.Fprintf(w, "%s\t%s\n", c.Key, c.Codec)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&path, "codecs", "", "JSON codec document (default: config, then built-in)")
	return cmd
}
