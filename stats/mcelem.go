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

// Package stats implements the two statistics collectors a V-gram index
// build depends on: an exact-threshold frequent-gram collector (Exact) and
// an approximate Lossy-Counting top-k collector (Lossy) whose output feeds
// the Markov selectivity estimator in package pattern.
package stats

import (
	"bytes"
	"encoding/binary"
	"math"
	"sort"

	vgram "github.com/vgram-index/vgram"
)

// MaxStatQ is the fixed maximum gram character length Lossy considers:
// char, bigram, trigram, matching the sliding-trigram shape the Markov
// estimator in package pattern consumes.
const MaxStatQ = 3

// MCElem is one kept entry of an MCELEM table: a gram and its estimated
// document frequency.
type MCElem struct {
	Gram []byte
	Freq float64
}

// MCElemTable is the serialized output of Lossy: kept entries sorted by
// byte order, plus the min/max frequency among them (used by the
// selectivity estimator's below-any-kept fallback).
type MCElemTable struct {
	Elems   []MCElem
	MinFreq float64
	MaxFreq float64
}

// Find returns the entry for gram and true if present. Callers pass
// already-lowercased gram bytes. Lossy counts grams of sentinel-padded
// words, so the table also holds grams containing the sentinel (such as
// "$t" or "he$").
func (t *MCElemTable) Find(gram []byte) (MCElem, bool) {
	i := sort.Search(len(t.Elems), func(i int) bool {
		return bytes.Compare(t.Elems[i].Gram, gram) >= 0
	})
	if i < len(t.Elems) && bytes.Equal(t.Elems[i].Gram, gram) {
		return t.Elems[i], true
	}
	return MCElem{}, false
}

// Encode packs t into a self-contained little-endian binary blob: a
// float64 pair (MinFreq, MaxFreq), a uint32 entry count, then for each
// entry a uint32 gram length, the gram bytes, and the entry's float64
// frequency.
func (t *MCElemTable) Encode() []byte {
	var buf bytes.Buffer
	var tmp [8]byte

	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(t.MinFreq))
	buf.Write(tmp[:])
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(t.MaxFreq))
	buf.Write(tmp[:])

	binary.LittleEndian.PutUint32(tmp[:4], uint32(len(t.Elems)))
	buf.Write(tmp[:4])

	for _, e := range t.Elems {
		binary.LittleEndian.PutUint32(tmp[:4], uint32(len(e.Gram)))
		buf.Write(tmp[:4])
		buf.Write(e.Gram)
		binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(e.Freq))
		buf.Write(tmp[:])
	}
	return buf.Bytes()
}

// DecodeMCElemTable parses a blob produced by Encode.
func DecodeMCElemTable(buf []byte) (*MCElemTable, error) {
	if len(buf) < 20 {
		return nil, vgram.NewError(vgram.CorruptedInput, "mcelem: truncated header")
	}
	t := &MCElemTable{}
	t.MinFreq = math.Float64frombits(binary.LittleEndian.Uint64(buf[0:8]))
	t.MaxFreq = math.Float64frombits(binary.LittleEndian.Uint64(buf[8:16]))
	count := int(binary.LittleEndian.Uint32(buf[16:20]))

	pos := 20
	elems := make([]MCElem, 0, count)
	for i := 0; i < count; i++ {
		if pos+4 > len(buf) {
			return nil, vgram.NewError(vgram.CorruptedInput, "mcelem: truncated entry length")
		}
		glen := int(binary.LittleEndian.Uint32(buf[pos : pos+4]))
		pos += 4
		if pos+glen+8 > len(buf) {
			return nil, vgram.NewError(vgram.CorruptedInput, "mcelem: truncated entry payload")
		}
		gram := make([]byte, glen)
		copy(gram, buf[pos:pos+glen])
		pos += glen
		freq := math.Float64frombits(binary.LittleEndian.Uint64(buf[pos : pos+8]))
		pos += 8
		elems = append(elems, MCElem{Gram: gram, Freq: freq})
	}
	t.Elems = elems
	return t, nil
}
