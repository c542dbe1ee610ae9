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

package stats

import (
	"bytes"
	"sort"

	vgram "github.com/vgram-index/vgram"
)

type ecmEntry struct {
	docCount int
	touched  bool
}

// Exact is the exact-threshold frequent-gram aggregate: it counts, for
// every distinct q-gram in [minQ,maxQ] seen across the documents added
// with Add, how many of those documents contain it at least once, and
// returns the ones crossing a document-frequency threshold.
//
// An Exact must be driven with NewExact, one or more calls to Add/AddNull, and
// exactly one call to Finish; it is not safe for concurrent use.
type Exact struct {
	minQ, maxQ int
	threshold  float64

	ecm       map[string]*ecmEntry
	touched   []string
	totalDocs int
	finished  bool
	started   bool
}

// NewExact constructs an Exact aggregate over [minQ,maxQ]-length grams,
// keeping those whose document frequency reaches threshold (a fraction of
// total documents processed, including NULLs).
func NewExact(minQ, maxQ int, threshold float64) (*Exact, error) {
	if minQ < 1 || maxQ < minQ {
		return nil, vgram.NewError(vgram.InvalidParameter, "exact: invalid [minQ,maxQ] range")
	}
	if threshold < 0 || threshold > 1 {
		return nil, vgram.NewError(vgram.InvalidParameter, "exact: threshold must be in [0,1]")
	}
	return &Exact{
		minQ:      minQ,
		maxQ:      maxQ,
		threshold: threshold,
		ecm:       make(map[string]*ecmEntry),
	}, nil
}

// Add processes one document: every distinct q-gram in its words (for
// q in [minQ,maxQ]) has its document count incremented at most once.
func (e *Exact) Add(doc []byte) {
	e.started = true
	e.totalDocs++

	vgram.ScanWords(doc, func(word []byte) {
		e.scanWord(word)
	})

	for _, key := range e.touched {
		e.ecm[key].touched = false
	}
	e.touched = e.touched[:0]
}

// AddNull processes a NULL document: it counts toward totalDocs (the
// threshold denominator) but contributes no grams.
func (e *Exact) AddNull() {
	e.started = true
	e.totalDocs++
}

func (e *Exact) scanWord(word []byte) {
	n := vgram.RuneOffsets(word)
	for i := 0; i < len(n)-1; i++ {
		for q := e.minQ; q <= e.maxQ; q++ {
			j := i + q
			if j >= len(n) {
				break
			}
			gram := word[n[i]:n[j]]
			e.touch(gram)
		}
	}
}

func (e *Exact) touch(gram []byte) {
	key := string(gram)
	entry, ok := e.ecm[key]
	if !ok {
		entry = &ecmEntry{}
		e.ecm[key] = entry
	}
	if entry.touched {
		return
	}
	entry.docCount++
	entry.touched = true
	e.touched = append(e.touched, key)
}

// Finish returns the sorted set of grams whose document frequency is at
// least floor(threshold * totalDocs). It fails with InvalidUsage if Add
// or AddNull was never called, or if Finish was already called.
func (e *Exact) Finish() ([][]byte, error) {
	if e.finished {
		return nil, vgram.NewError(vgram.InvalidUsage, "exact: Finish called twice")
	}
	if !e.started {
		return nil, vgram.NewError(vgram.InvalidUsage, "exact: Finish called without any Add/AddNull")
	}
	e.finished = true

	cutoff := int(e.threshold * float64(e.totalDocs))

	var out [][]byte
	for key, entry := range e.ecm {
		if entry.docCount >= cutoff {
			out = append(out, []byte(key))
		}
	}
	sort.Slice(out, func(i, j int) bool { return bytes.Compare(out[i], out[j]) < 0 })
	return out, nil
}
