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

type lcmEntry struct {
	count   int
	delta   int
	touched bool
}

// Lossy is the Lossy-Counting (Manku & Motwani, 2002) top-k collector:
// it approximates the K most frequent grams of character length
// 1..MaxStatQ across the documents added with Add, bounding the error on
// any kept count by qgramsCount/w.
//
// A Lossy must be driven with NewLossy, one or more calls to Add, and
// exactly one call to Finish; it is not safe for concurrent use.
type Lossy struct {
	k int
	w int

	lcm         map[string]*lcmEntry
	touched     []string
	qgramsCount int
	bCurrent    int
	nonNullRows int
	started     bool
	finished    bool
}

// NewLossy constructs a Lossy collector targeting at most k kept entries.
func NewLossy(k int) (*Lossy, error) {
	if k < 1 {
		return nil, vgram.NewError(vgram.InvalidParameter, "lossy: k must be >= 1")
	}
	w := (k+10)*1000 + 6 // +6 then /7 below rounds ceil((k+10)*1000/7)
	w /= 7
	return &Lossy{
		k:        k,
		w:        w,
		lcm:      make(map[string]*lcmEntry),
		bCurrent: 1,
	}, nil
}

// Add processes one document, updating LCM entries for every distinct
// 1..MaxStatQ-length gram seen in its words (at most one LC-increment per
// gram per document) and pruning at bucket boundaries.
func (l *Lossy) Add(doc []byte) {
	l.started = true
	before := l.qgramsCount

	vgram.ScanWords(doc, l.scanWord)

	for _, key := range l.touched {
		l.lcm[key].touched = false
	}
	l.touched = l.touched[:0]
	l.nonNullRows++

	after := l.qgramsCount
	crossed := after/l.w - before/l.w
	if crossed <= 0 {
		return
	}
	for key, e := range l.lcm {
		if e.count+e.delta <= l.bCurrent {
			delete(l.lcm, key)
		}
	}
	l.bCurrent += crossed
}

func (l *Lossy) scanWord(word []byte) {
	n := vgram.RuneOffsets(word)
	for i := 0; i < len(n)-1; i++ {
		for q := 1; q <= MaxStatQ; q++ {
			j := i + q
			if j >= len(n) {
				break
			}
			l.occurrence(word[n[i]:n[j]])
		}
	}
}

func (l *Lossy) occurrence(gram []byte) {
	l.qgramsCount++

	key := string(gram)
	entry, ok := l.lcm[key]
	if ok && entry.touched {
		return
	}
	if !ok {
		entry = &lcmEntry{count: 1, delta: l.bCurrent - 1}
		l.lcm[key] = entry
	} else {
		entry.count++
	}
	entry.touched = true
	l.touched = append(l.touched, key)
}

// Finish computes the cutoff 9*qgramsCount/w, keeps entries whose count
// exceeds it, truncates to the k highest-count entries if more were kept,
// and returns them sorted by byte order with their document frequencies.
func (l *Lossy) Finish() (*MCElemTable, error) {
	if l.finished {
		return nil, vgram.NewError(vgram.InvalidUsage, "lossy: Finish called twice")
	}
	if !l.started {
		return nil, vgram.NewError(vgram.InvalidUsage, "lossy: Finish called without any Add")
	}
	l.finished = true

	cutoff := 9 * l.qgramsCount / l.w

	type kept struct {
		gram  []byte
		count int
	}
	var keptEntries []kept
	for key, e := range l.lcm {
		if e.count > cutoff {
			keptEntries = append(keptEntries, kept{gram: []byte(key), count: e.count})
		}
	}

	if len(keptEntries) > l.k {
		sort.Slice(keptEntries, func(i, j int) bool { return keptEntries[i].count > keptEntries[j].count })
		keptEntries = keptEntries[:l.k]
	}

	sort.Slice(keptEntries, func(i, j int) bool { return bytes.Compare(keptEntries[i].gram, keptEntries[j].gram) < 0 })

	table := &MCElemTable{}
	if len(keptEntries) == 0 || l.nonNullRows == 0 {
		return table, nil
	}

	table.Elems = make([]MCElem, len(keptEntries))
	for i, e := range keptEntries {
		freq := float64(e.count) / float64(l.nonNullRows)
		table.Elems[i] = MCElem{Gram: e.gram, Freq: freq}
		if i == 0 || freq < table.MinFreq {
			table.MinFreq = freq
		}
		if i == 0 || freq > table.MaxFreq {
			table.MaxFreq = freq
		}
	}
	return table, nil
}
