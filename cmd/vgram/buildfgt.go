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

	"github.com/dustin/go-humanize"
	"github.com/peterbourgon/ff/v3/ffcli"

	vgram "github.com/vgram-index/vgram"
	"github.com/vgram-index/vgram/logging"
	"github.com/vgram-index/vgram/stats"
)

func buildFGTCommand() *ffcli.Command {
	fs := flag.NewFlagSet("vgram build-fgt", flag.ExitOnError)
	minQ := fs.Int("minq", 2, "minimum V-gram character length")
	maxQ := fs.Int("maxq", 2, "maximum V-gram character length")
	threshold := fs.Float64("threshold", 0.01, "document-frequency cutoff, as a fraction of total documents")
	excludeGlob := fs.String("exclude", "", "doublestar glob of paths to exclude, relative to dir")
	maxSize := fs.Int64("max-file-size", 0, "skip files larger than this many bytes (0: no limit)")
	out := fs.String("out", "", "path to write the packed FGT file (required)")

	return &ffcli.Command{
		Name:       "build-fgt",
		ShortUsage: "vgram build-fgt [flags] -out <path> <dir>",
		ShortHelp:  "collect-frequent over a corpus and write the resulting FGT to disk",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("build-fgt: missing corpus directory argument")
			}
			if *out == "" {
				return fmt.Errorf("build-fgt: -out is required")
			}

			grams, err := runBuildFGT(ctx, buildFGTOptions{
				dir:          args[0],
				minQ:         *minQ,
				maxQ:         *maxQ,
				threshold:    *threshold,
				excludeGlob:  *excludeGlob,
				maxSizeBytes: *maxSize,
			})
			if err != nil {
				return err
			}

			fgt, err := vgram.Fill(grams, *minQ, *maxQ)
			if err != nil {
				return err
			}
			if err := vgram.WriteFGT(*out, fgt); err != nil {
				return err
			}

			logging.Get().Sugar().Infow("build-fgt done",
				"dir", args[0],
				"out", *out,
				"grams", fgt.Count(),
				"bytes", humanize.Bytes(uint64(len(fgt.Marshal()))),
			)
			return nil
		},
	}
}

type buildFGTOptions struct {
	dir          string
	minQ, maxQ   int
	threshold    float64
	excludeGlob  string
	maxSizeBytes int64
}

// runBuildFGT drives collect-frequent's aggregate over dir and returns
// the resulting gram set, shared between the build-fgt and watch
// subcommands.
func runBuildFGT(ctx context.Context, opts buildFGTOptions) ([][]byte, error) {
	var globs []string
	if opts.excludeGlob != "" {
		globs = []string{opts.excludeGlob}
	}
	corpus, err := loadCorpus(ctx, corpusOptions{dir: opts.dir, excludeGlobs: globs, maxSizeBytes: opts.maxSizeBytes})
	if err != nil {
		return nil, err
	}

	agg, err := stats.NewExact(opts.minQ, opts.maxQ, opts.threshold)
	if err != nil {
		return nil, err
	}
	for i, doc := range corpus.Docs {
		if corpus.Skipped.Contains(uint32(i)) {
			agg.AddNull()
			continue
		}
		agg.Add(doc)
	}
	return agg.Finish()
}
