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

// Package pattern turns a LIKE/ILIKE wildcard pattern into the candidate
// V-gram set an index search should look for, and estimates the
// selectivity of a pattern from a package stats MCELEM table.
package pattern

import (
	"bytes"
	"sort"

	vgram "github.com/vgram-index/vgram"
)

const (
	metaAny            = '%'
	metaOne            = '_'
	defaultEscape byte = '\\'
)

// Fragment is one literal run of a tokenized pattern: the run's
// lowercased bytes, and whether a sentinel should be synthesized on each
// side before running the walker over it. Mirrors the teacher's
// RegexpToQuery/LowerRegexp split between "the literal text" and "is this
// safe to use standalone" (query/regexp.go's isSymetric), but the two
// sentinel flags here are per-side rather than a single whole-query flag,
// since a LIKE fragment can border a wildcard on one side and a real word
// boundary on the other.
type Fragment struct {
	Literal          []byte
	LeadingSentinel  bool
	TrailingSentinel bool
}

// Span returns the fragment's literal bytes padded with the sentinel
// byte on whichever sides LeadingSentinel/TrailingSentinel request,
// ready to hand to vgram.Walk exactly like a sentinel-padded word from
// vgram.ScanWords.
func (f Fragment) Span() []byte {
	n := len(f.Literal)
	if f.LeadingSentinel {
		n++
	}
	if f.TrailingSentinel {
		n++
	}
	span := make([]byte, 0, n)
	if f.LeadingSentinel {
		span = append(span, '$')
	}
	span = append(span, f.Literal...)
	if f.TrailingSentinel {
		span = append(span, '$')
	}
	return span
}

// Tokenize splits pattern at unescaped '%' (zero-or-more) and '_'
// (exactly-one) wildcard meta-characters into literal fragments. escape,
// or '\\' if zero, neutralizes the following byte, treating it as a
// literal extractable byte even if it would otherwise be a meta.
//
// A fragment gets a leading sentinel when the boundary immediately
// before it is a real word boundary (string start or a non-extractable
// separator byte) rather than a wildcard meta, and symmetrically for the
// trailing sentinel — a meta boundary means the fragment may match any
// prefix/suffix continuation in the indexed string, so no sentinel is
// synthesized on that side.
//
// An unterminated escape at the end of pattern stops tokenization at
// that point; whatever fragments were found up to the defect are
// returned with a nil error, since the caller's index recheck step makes
// this safe (spec.md §7).
func Tokenize(pattern []byte, escape byte) ([]Fragment, error) {
	if escape == 0 {
		escape = defaultEscape
	}
	if escape == metaAny || escape == metaOne {
		return nil, vgram.NewError(vgram.InvalidParameter, "tokenize: escape byte collides with a wildcard meta")
	}

	var frags []Fragment
	var buf []byte
	inRun := false
	leadingSentinel := false
	prevWasMeta := false

	flush := func(trailingIsMeta bool) {
		if !inRun {
			return
		}
		frags = append(frags, Fragment{
			Literal:          append([]byte(nil), buf...),
			LeadingSentinel:  leadingSentinel,
			TrailingSentinel: !trailingIsMeta,
		})
		buf = buf[:0]
		inRun = false
	}

	startRun := func() {
		leadingSentinel = !prevWasMeta
		inRun = true
	}

	i := 0
	for i < len(pattern) {
		b := pattern[i]

		switch {
		case b == escape:
			if i+1 >= len(pattern) {
				flush(false)
				i = len(pattern)
				continue
			}
			if !inRun {
				startRun()
			}
			buf = append(buf, lowerASCIIByte(pattern[i+1]))
			i += 2

		case b == metaAny || b == metaOne:
			flush(true)
			prevWasMeta = true
			i++

		case isExtractableLead(b):
			if !inRun {
				startRun()
			}
			buf = append(buf, lowerASCIIByte(b))
			i++

		default:
			flush(false)
			prevWasMeta = false
			_, sz := decodeRuneSize(pattern[i:])
			i += sz
		}
	}
	flush(false)

	return frags, nil
}

// CandidateVgrams tokenizes pattern and returns the byte-sorted
// deduplicated union of vgram.ExtractQuery's output over every fragment
// — the set an index search drives against the posting lists stored
// under fgt's frequent-gram rules (spec.md §6's index query callback).
func CandidateVgrams(fgt *vgram.FGT, pattern []byte, escape byte, minQ, maxQ int) ([][]byte, error) {
	frags, err := Tokenize(pattern, escape)
	if err != nil {
		return nil, err
	}

	var all [][]byte
	for _, f := range frags {
		if len(f.Literal) == 0 {
			continue
		}
		grams, err := vgram.ExtractQuery(f.Literal, f.LeadingSentinel, f.TrailingSentinel, minQ, maxQ, fgt)
		if err != nil {
			return nil, err
		}
		all = append(all, grams...)
	}

	sort.Slice(all, func(i, j int) bool { return bytes.Compare(all[i], all[j]) < 0 })
	unique := all[:0]
	for i, g := range all {
		if i > 0 && bytes.Equal(g, all[i-1]) {
			continue
		}
		unique = append(unique, g)
	}
	return unique, nil
}

func isExtractableLead(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func lowerASCIIByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// decodeRuneSize returns the byte width of the rune starting at b,
// falling back to 1 on invalid encoding so the scanner always makes
// progress.
func decodeRuneSize(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0, 0
	}
	if b[0] < 0x80 {
		return rune(b[0]), 1
	}
	switch {
	case b[0]&0xE0 == 0xC0 && len(b) >= 2:
		return 0, 2
	case b[0]&0xF0 == 0xE0 && len(b) >= 3:
		return 0, 3
	case b[0]&0xF8 == 0xF0 && len(b) >= 4:
		return 0, 4
	default:
		return 0, 1
	}
}
