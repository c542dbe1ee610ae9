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

	"github.com/vgram-index/vgram/logging"
	"github.com/vgram-index/vgram/stats"
)

func collectFrequentCommand() *ffcli.Command {
	fs := flag.NewFlagSet("vgram collect-frequent", flag.ExitOnError)
	minQ := fs.Int("minq", 2, "minimum V-gram character length")
	maxQ := fs.Int("maxq", 2, "maximum V-gram character length")
	threshold := fs.Float64("threshold", 0.01, "document-frequency cutoff, as a fraction of total documents")
	excludeGlob := fs.String("exclude", "", "doublestar glob of paths to exclude, relative to dir")
	maxSize := fs.Int64("max-file-size", 0, "skip files larger than this many bytes (0: no limit)")
	metricsAddr := fs.String("metrics-addr", "", "if set, serve Prometheus metrics on this address while running")

	return &ffcli.Command{
		Name:       "collect-frequent",
		ShortUsage: "vgram collect-frequent [flags] <dir>",
		ShortHelp:  "print the exact-threshold frequent-gram set over a corpus directory",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("collect-frequent: missing corpus directory argument")
			}
			maybeServeMetrics(*metricsAddr)

			var globs []string
			if *excludeGlob != "" {
				globs = []string{*excludeGlob}
			}
			corpus, err := loadCorpus(ctx, corpusOptions{dir: args[0], excludeGlobs: globs, maxSizeBytes: *maxSize})
			if err != nil {
				return err
			}
			docsSkipped.WithLabelValues("collect-frequent").Add(float64(corpus.Skipped.GetCardinality()))

			agg, err := stats.NewExact(*minQ, *maxQ, *threshold)
			if err != nil {
				return err
			}

			var grams [][]byte
			err = observeAggregate("collect-frequent", func() error {
				for i, doc := range corpus.Docs {
					if corpus.Skipped.Contains(uint32(i)) {
						agg.AddNull()
						continue
					}
					agg.Add(doc)
					docsProcessed.WithLabelValues("collect-frequent").Inc()
				}

				var ferr error
				grams, ferr = agg.Finish()
				return ferr
			})
			if err != nil {
				return err
			}
			gramsTouched.WithLabelValues("collect-frequent").Add(float64(len(grams)))

			logging.Get().Sugar().Infow("collect-frequent done",
				"dir", args[0],
				"docs", humanize.Comma(int64(len(corpus.Paths))),
				"skipped", corpus.Skipped.GetCardinality(),
				"grams", len(grams),
			)

			for _, g := range grams {
				fmt.Println(string(g))
			}
			return nil
		},
	}
}
