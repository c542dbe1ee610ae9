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

	"github.com/peterbourgon/ff/v3/ffcli"

	vgram "github.com/vgram-index/vgram"
	"github.com/vgram-index/vgram/pattern"
)

func extractCommand() *ffcli.Command {
	fs := flag.NewFlagSet("vgram extract", flag.ExitOnError)
	minQ := fs.Int("minq", 2, "minimum V-gram character length")
	maxQ := fs.Int("maxq", 2, "maximum V-gram character length")
	fgtPath := fs.String("fgt", "", "path to a packed FGT file; omit for an empty table")
	isPattern := fs.Bool("pattern", false, "treat the argument as a LIKE/ILIKE pattern instead of an indexed value")

	return &ffcli.Command{
		Name:       "extract",
		ShortUsage: "vgram extract [flags] <string>",
		ShortHelp:  "print the V-gram set extracted from a string or LIKE pattern",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("extract: missing string argument")
			}

			fgt, closeFGT, err := openOrEmptyFGT(*fgtPath, *minQ, *maxQ)
			if err != nil {
				return err
			}
			defer closeFGT()

			var grams [][]byte
			if *isPattern {
				grams, err = pattern.CandidateVgrams(fgt, []byte(args[0]), 0, *minQ, *maxQ)
			} else {
				grams, err = vgram.ExtractValue([]byte(args[0]), *minQ, *maxQ, fgt)
			}
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
