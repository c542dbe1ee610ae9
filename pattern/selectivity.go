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

package pattern

import (
	vgram "github.com/vgram-index/vgram"
	"github.com/vgram-index/vgram/stats"
)

// Estimate returns an estimated selectivity in [0,1] for pattern against
// table, the MCELEM statistics collected by stats.Lossy, and
// nullFraction (the fraction of rows expected to be NULL and therefore
// never matched).
//
// Each tokenized fragment's selectivity is estimated independently
// (short fragments by direct MCELEM lookup, longer ones by a
// first-order Markov approximation over sliding trigrams) and the
// per-fragment estimates are multiplied together, then scaled by
// (1 - nullFraction) and clamped to [0,1].
func Estimate(table *stats.MCElemTable, pattern []byte, escape byte, nullFraction float64) (float64, error) {
	frags, err := Tokenize(pattern, escape)
	if err != nil {
		return 0, err
	}

	sel := 1.0
	for _, f := range frags {
		if len(f.Literal) == 0 {
			continue
		}
		sel *= fragmentSelectivity(table, f.Literal)
	}

	sel *= 1 - nullFraction
	if sel < 0 {
		sel = 0
	}
	if sel > 1 {
		sel = 1
	}
	return sel, nil
}

func fragmentSelectivity(table *stats.MCElemTable, literal []byte) float64 {
	offsets := vgram.RuneOffsets(literal)
	length := len(offsets) - 1

	if length <= stats.MaxStatQ {
		if e, ok := table.Find(literal); ok {
			return e.Freq
		}
		return belowKeptEstimate(table)
	}

	return markovSelectivity(table, literal, offsets)
}

// markovSelectivity slides a trigram window across literal, approximating
// the joint frequency as a first-order Markov chain: start from the
// leading trigram's frequency, then for each further character multiply
// by freq(new trigram) / freq(overlap bigram with the previous trigram).
func markovSelectivity(table *stats.MCElemTable, literal []byte, offsets []int) float64 {
	numRunes := len(offsets) - 1
	lastStart := numRunes - 3

	sel := gramFreqOrFallback(table, literal[offsets[0]:offsets[3]])

	for i := 1; i <= lastStart; i++ {
		trigram := literal[offsets[i]:offsets[i+3]]
		numerator := gramFreqOrFallback(table, trigram)
		denominator := overlapBigramFreq(table, literal, offsets, i)
		sel *= numerator / denominator
	}
	return sel
}

// overlapBigramFreq looks up the frequency of the bigram shared between
// the trigram starting at rune i-1 and the trigram starting at rune i
// (runes [i, i+2)). If absent, it widens the search by shortening from
// the left — next the unigram [i+1, i+2) — until a present q-gram is
// found, returning 1.0 once the span shrinks to zero length.
func overlapBigramFreq(table *stats.MCElemTable, literal []byte, offsets []int, i int) float64 {
	right := i + 2
	for left := i; left < right; left++ {
		gram := literal[offsets[left]:offsets[right]]
		if e, ok := table.Find(gram); ok {
			return e.Freq
		}
	}
	return 1.0
}

func gramFreqOrFallback(table *stats.MCElemTable, gram []byte) float64 {
	if e, ok := table.Find(gram); ok {
		return e.Freq
	}
	return belowKeptEstimate(table)
}

func belowKeptEstimate(table *stats.MCElemTable) float64 {
	return table.MinFreq * 0.5
}
