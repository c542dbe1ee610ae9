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

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/vgram-index/vgram/pattern"
	"github.com/vgram-index/vgram/stats"
	"github.com/vgram-index/vgram/trace/ot"
)

func queryCommand() *ffcli.Command {
	fs := flag.NewFlagSet("vgram query", flag.ExitOnError)
	minQ := fs.Int("minq", 2, "minimum V-gram character length")
	maxQ := fs.Int("maxq", 2, "maximum V-gram character length")
	fgtPath := fs.String("fgt", "", "path to a packed FGT file; omit for an empty table")
	mcelemPath := fs.String("mcelem", "", "path to an encoded MCELEM table, for -selectivity")
	nullFraction := fs.Float64("null-fraction", 0, "fraction of NULL rows, for -selectivity")
	wantSelectivity := fs.Bool("selectivity", false, "print the estimated selectivity instead of candidate V-grams")

	return &ffcli.Command{
		Name:       "query",
		ShortUsage: "vgram query [flags] <LIKE pattern>",
		ShortHelp:  "print candidate V-grams or an estimated selectivity for a LIKE/ILIKE pattern",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("query: missing pattern argument")
			}
			pat := []byte(args[0])

			span, _ := ot.StartSpanFromContext(ot.WithShouldTrace(ctx, true), "vgram.query")
			defer span.Finish()

			if *wantSelectivity {
				if *mcelemPath == "" {
					return fmt.Errorf("query: -selectivity requires -mcelem")
				}
				buf, err := os.ReadFile(*mcelemPath)
				if err != nil {
					return err
				}
				table, err := stats.DecodeMCElemTable(buf)
				if err != nil {
					return err
				}
				sel, err := pattern.Estimate(table, pat, 0, *nullFraction)
				if err != nil {
					return err
				}
				fmt.Println(sel)
				return nil
			}

			fgt, closeFGT, err := openOrEmptyFGT(*fgtPath, *minQ, *maxQ)
			if err != nil {
				return err
			}
			defer closeFGT()

			grams, err := pattern.CandidateVgrams(fgt, pat, 0, *minQ, *maxQ)
			if err != nil {
				return err
			}
			for _, g := range grams {
				fmt.Println(string(g))
			}
			return nil
		},
	}
}
