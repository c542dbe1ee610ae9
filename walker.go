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

import "unicode/utf8"

// Vgram is one emitted minimal-cover gram: the byte range [Start,End) of
// word it came from.
type Vgram struct {
	Start, End int
}

// Bytes returns the emitted gram's bytes from word. word must be the same
// slice (or an identical copy) passed to Walk.
func (v Vgram) Bytes(word []byte) []byte { return word[v.Start:v.End] }

// Walk runs the minimal-cover V-gram walker over word (a single sentinel
// padded word from ScanWords, or an arbitrary byte string such as a
// wildcard-pattern literal fragment from package pattern) and calls emit
// once per selected gram, left to right.
//
// At each start position p the walker grows a candidate gram one character
// at a time and asks fgt whether the candidate is a frequent gram. Growth
// stops as soon as a candidate is NOT in fgt (that candidate is a rare
// gram, recorded), or the candidate reaches maxQ characters, or word ends;
// in the latter two cases nothing is recorded for p. Each recorded
// candidate replaces the pending one; the pending candidate is emitted
// only when the next recorded candidate extends further than it did — the
// minimal-cover rule — so a pending candidate that contains a later one is
// dropped in favour of the shorter, nested gram. The last pending
// candidate is flushed once the scan reaches the end of word.
func Walk(fgt *FGT, word []byte, minQ, maxQ int, emit func(Vgram)) {
	if minQ < 1 || maxQ < minQ {
		return
	}

	var pending *Vgram

	for p := 0; p < len(word); {
		end, ok := findCandidate(fgt, word, p, minQ, maxQ)
		if ok {
			v := Vgram{Start: p, End: end}
			if pending != nil && v.End > pending.End {
				emit(*pending)
			}
			pending = &v
		}
		p += nextCharLen(word, p)
	}

	if pending != nil {
		emit(*pending)
	}
}

// findCandidate grows a candidate gram starting at byte offset p one
// character at a time, narrowing the FGT search range as it goes, and
// reports the byte offset of the first candidate found NOT to be a
// frequent gram (and therefore to record as a rare-gram candidate). ok is
// false if every candidate in [minQ,maxQ] starting at p is frequent, or if
// word ends before minQ characters are available.
func findCandidate(fgt *FGT, word []byte, p, minQ, maxQ int) (end int, ok bool) {
	lo, hi := 0, fgt.Count()
	r := p
	for length := 1; length <= maxQ; length++ {
		n := nextCharLen(word, r)
		if n == 0 {
			return 0, false
		}
		r += n

		if length < minQ {
			continue
		}

		candidate := word[p:r]

		if fgt.bloom != nil && !fgt.bloom.maybeHas(candidate) {
			return r, true
		}

		lo, hi = fgt.prefixRange(candidate, lo, hi)
		if lo >= hi {
			return r, true
		}
		if !equalBytes(fgt.Get(lo), candidate) {
			return r, true
		}
		// candidate is itself a frequent gram; keep growing unless this
		// was the last allowed length.
	}
	return 0, false
}

func nextCharLen(b []byte, at int) int {
	if at >= len(b) {
		return 0
	}
	_, sz := utf8.DecodeRune(b[at:])
	if sz <= 0 {
		return 1
	}
	return sz
}

func equalBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
