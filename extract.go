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

package vgram

import (
	"bytes"
	"fmt"
	"sort"
)

// ExtractValue returns the sorted, deduplicated V-gram set for an
// indexed value: every word in s (per ScanWords) is run through the
// minimal-cover walker against fgt, in [minQ,maxQ]. This is the library
// entry point behind cmd/vgram extract's indexed-value path (spec.md §6's
// index value callback).
func ExtractValue(s []byte, minQ, maxQ int, fgt *FGT) ([][]byte, error) {
	if minQ < 1 || maxQ < minQ {
		return nil, NewError(InvalidParameter, fmt.Sprintf("extractvalue: invalid range [%d,%d]", minQ, maxQ))
	}

	var all [][]byte
	ScanWords(s, func(word []byte) {
		Walk(fgt, word, minQ, maxQ, func(v Vgram) {
			g := make([]byte, v.End-v.Start)
			copy(g, word[v.Start:v.End])
			all = append(all, g)
		})
	})
	return sortedUniqueGrams(all), nil
}

// ExtractQuery returns the sorted, deduplicated V-gram set for a single
// query fragment (as produced by package pattern's tokenizer), padding
// it with the sentinel byte on whichever side leftPad/rightPad request
// before running the walker. This is the library entry point behind
// package pattern's per-fragment extraction (spec.md §6's index query
// callback).
func ExtractQuery(fragment []byte, leftPad, rightPad bool, minQ, maxQ int, fgt *FGT) ([][]byte, error) {
	if minQ < 1 || maxQ < minQ {
		return nil, NewError(InvalidParameter, fmt.Sprintf("extractquery: invalid range [%d,%d]", minQ, maxQ))
	}
	if len(fragment) == 0 {
		return nil, nil
	}

	n := len(fragment)
	if leftPad {
		n++
	}
	if rightPad {
		n++
	}
	span := make([]byte, 0, n)
	if leftPad {
		span = append(span, sentinel)
	}
	span = append(span, fragment...)
	if rightPad {
		span = append(span, sentinel)
	}

	var all [][]byte
	Walk(fgt, span, minQ, maxQ, func(v Vgram) {
		g := make([]byte, v.End-v.Start)
		copy(g, span[v.Start:v.End])
		all = append(all, g)
	})
	return sortedUniqueGrams(all), nil
}

func sortedUniqueGrams(grams [][]byte) [][]byte {
	sort.Slice(grams, func(i, j int) bool { return bytes.Compare(grams[i], grams[j]) < 0 })
	out := grams[:0]
	for i, g := range grams {
		if i > 0 && bytes.Equal(g, grams[i-1]) {
			continue
		}
		out = append(out, g)
	}
	return out
}
