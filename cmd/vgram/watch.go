// Copyright 2016 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/peterbourgon/ff/v3/ffcli"

	vgram "github.com/vgram-index/vgram"
	"github.com/vgram-index/vgram/logging"
)

func watchCommand() *ffcli.Command {
	fs := flag.NewFlagSet("vgram watch", flag.ExitOnError)
	minQ := fs.Int("minq", 2, "minimum V-gram character length")
	maxQ := fs.Int("maxq", 2, "maximum V-gram character length")
	threshold := fs.Float64("threshold", 0.01, "document-frequency cutoff, as a fraction of total documents")
	excludeGlob := fs.String("exclude", "", "doublestar glob of paths to exclude, relative to dir")
	maxSize := fs.Int64("max-file-size", 0, "skip files larger than this many bytes (0: no limit)")
	out := fs.String("out", "", "path to write the packed FGT file (required)")
	debounce := fs.Duration("debounce", 2*time.Second, "time to wait after the last filesystem event before rebuilding")

	return &ffcli.Command{
		Name:       "watch",
		ShortUsage: "vgram watch [flags] -out <path> <dir>",
		ShortHelp:  "rebuild the FGT at -out whenever files directly in dir change (subdirectories are not watched)",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("watch: missing corpus directory argument")
			}
			if *out == "" {
				return fmt.Errorf("watch: -out is required")
			}

			opts := buildFGTOptions{
				dir:          args[0],
				minQ:         *minQ,
				maxQ:         *maxQ,
				threshold:    *threshold,
				excludeGlob:  *excludeGlob,
				maxSizeBytes: *maxSize,
			}

			rebuild := func() error {
				grams, err := runBuildFGT(ctx, opts)
				if err != nil {
					return err
				}
				fgt, err := vgram.Fill(grams, opts.minQ, opts.maxQ)
				if err != nil {
					return err
				}
				if err := vgram.WriteFGT(*out, fgt); err != nil {
					return err
				}
				logging.Get().Sugar().Infow("watch rebuilt fgt", "out", *out, "grams", fgt.Count())
				return nil
			}

			if err := rebuild(); err != nil {
				return err
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()
			if err := watcher.Add(args[0]); err != nil {
				return err
			}

			var timer *time.Timer
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					logging.Get().Sugar().Warnw("watch error", "err", err)
				case _, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if timer != nil {
						timer.Stop()
					}
					timer = time.AfterFunc(*debounce, func() {
						if err := rebuild(); err != nil {
							logging.Get().Sugar().Errorw("watch rebuild failed", "err", err)
						}
					})
				}
			}
		},
	}
}
