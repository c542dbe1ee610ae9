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
	"os"

	"github.com/dustin/go-humanize"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/vgram-index/vgram/logging"
	"github.com/vgram-index/vgram/stats"
)

func analyzeCommand() *ffcli.Command {
	fs := flag.NewFlagSet("vgram analyze", flag.ExitOnError)
	k := fs.Int("k", 1000, "number of most frequent char/bigram/trigrams to keep")
	out := fs.String("out", "", "path to write the encoded MCELEM table (default: stdout)")
	excludeGlob := fs.String("exclude", "", "doublestar glob of paths to exclude, relative to dir")
	maxSize := fs.Int64("max-file-size", 0, "skip files larger than this many bytes (0: no limit)")
	metricsAddr := fs.String("metrics-addr", "", "if set, serve Prometheus metrics on this address while running")

	return &ffcli.Command{
		Name:       "analyze",
		ShortUsage: "vgram analyze [flags] <dir>",
		ShortHelp:  "build a Lossy-Counting MCELEM table over a corpus directory",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("analyze: missing corpus directory argument")
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
			docsSkipped.WithLabelValues("analyze").Add(float64(corpus.Skipped.GetCardinality()))

			lossy, err := stats.NewLossy(*k)
			if err != nil {
				return err
			}

			var table *stats.MCElemTable
			err = observeAggregate("analyze", func() error {
				for i, doc := range corpus.Docs {
					if corpus.Skipped.Contains(uint32(i)) {
						continue
					}
					lossy.Add(doc)
					docsProcessed.WithLabelValues("analyze").Inc()
				}

				var ferr error
				table, ferr = lossy.Finish()
				return ferr
			})
			if err != nil {
				return err
			}
			gramsTouched.WithLabelValues("analyze").Add(float64(len(table.Elems)))

			logging.Get().Sugar().Infow("analyze done",
				"dir", args[0],
				"docs", humanize.Comma(int64(len(corpus.Paths))),
				"kept", len(table.Elems),
				"bytes", humanize.Bytes(uint64(len(table.Encode()))),
			)

			encoded := table.Encode()
			if *out == "" {
				_, err = os.Stdout.Write(encoded)
				return err
			}
			return os.WriteFile(*out, encoded, 0o644)
		},
	}
}
