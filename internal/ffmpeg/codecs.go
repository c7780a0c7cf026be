// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// ClipConvert - FFmpeg 片段转码任务控制工具

package ffmpeg

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// CopyCodec is used whenever a selector cannot be resolved: stream copy,
// no re-encoding.
const CopyCodec = "-c copy"

// ErrConfig marks an unreadable or malformed codec document
var ErrConfig = errors.New("codec config")

var builtinCodecs = map[string]string{
	"copy": CopyCodec,
	"h264": "-c:v libx264 -pix_fmt yuv420p -c:a aac",
	"h265": "-c:v libx265 -pix_fmt yuv420p -tag:v hvc1 -c:a aac",
}

// Codecs maps a codec selector to its FFmpeg argument fragment
type Codecs interface {
	Lookup(key string) (string, bool)
	All() []CodecEntry
}

// CodecEntry is one selector of the codec document
type CodecEntry struct {
	Key   string `json:"key"`
	Codec string `json:"codec"`
}

type codecDocument struct {
	Video []CodecEntry `json:"video"`
}

type codecTable map[string]string

// BuiltinCodecs returns the static copy/h264/h265 table
func BuiltinCodecs() Codecs {
	t := make(codecTable, len(builtinCodecs))
	for k, v := range builtinCodecs {
		t[k] = v
	}
	return t
}

// LoadCodecs reads a document of the form
//
//	{"video": [{"key": "h264", "codec": "-c:v libx264"}]}
//
// Entries with an empty key or codec are skipped.
func LoadCodecs(path string) (Codecs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	var doc codecDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}

	t := make(codecTable, len(doc.Video))
	for _, e := range doc.Video {
		if e.Key == "" || e.Codec == "" {
			continue
		}
		t[e.Key] = e.Codec
	}
	return t, nil
}

func (t codecTable) Lookup(key string) (string, bool) {
	c, ok := t[key]
	return c, ok
}

func (t codecTable) All() []CodecEntry {
	out := make([]CodecEntry, 0, len(t))
	for k, v := range t {
		out = append(out, CodecEntry{Key: k, Codec: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// resolveCodec never fails, unknown selectors fall back to CopyCodec
func resolveCodec(c Codecs, key string) string {
	if c == nil {
		return CopyCodec
	}
	if codec, ok := c.Lookup(key); ok {
		return codec
	}
	return CopyCodec
}
