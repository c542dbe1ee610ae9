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
	"encoding/binary"
	"fmt"
	"sort"
	"unicode/utf8"
)

// FGT is the Frequent-Gram Table: an immutable, lexicographically sorted
// list of q-grams judged too common to index, together with the [minQ,maxQ]
// range they were built under.
//
// The packed layout mirrors the teacher's arena+offset ngram tables
// (ngramoffset.go's arrayNgramOffset): a count, an array of offsets into a
// shared byte arena, and the arena itself. Unlike the teacher's tables the
// offsets here point at NUL-terminated grams directly, since an FGT has no
// associated posting-list sizes to track.
//
// An offset is relative to byte 0 of the packed blob (which starts with the
// count field) rather than to the start of the arena, so a reader needs no
// header-size arithmetic: raw[offsets[i]:] always starts at gram i.
type FGT struct {
	minQ, maxQ int
	count      int
	raw        []byte
	offsets    []int32
	bloom      *bloomFilter
}

const fgtHeaderFieldSize = 4 // int32 count field

// MinQ returns the minimum gram character length this table was built for.
func (f *FGT) MinQ() int { return f.minQ }

// MaxQ returns the maximum gram character length this table was built for.
func (f *FGT) MaxQ() int { return f.maxQ }

// Count returns the number of frequent grams in the table.
func (f *FGT) Count() int { return f.count }

// Get returns the i-th gram by offset, 0 <= i < Count().
func (f *FGT) Get(i int) []byte {
	start := f.offsets[i]
	end := bytes.IndexByte(f.raw[start:], 0)
	if end < 0 {
		panic(NewError(CorruptedInput, fmt.Sprintf("fgt: gram %d missing NUL terminator", i)))
	}
	return f.raw[start : start+int32(end)]
}

// Fill validates grams against [minQ,maxQ] (character lengths, not byte
// lengths), sorts and deduplicates them by byte order, and packs them into
// an FGT.
//
// Fill is one of this package's exported entry points: a CorruptedInput
// panic raised anywhere in its call tree (e.g. Get, consulted while
// priming the bloom filter) is recovered here and returned as an error
// instead of crashing the caller, matching the teacher's per-call
// recover in shards.searchOneShard.
func Fill(grams [][]byte, minQ, maxQ int) (fgt *FGT, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*Error); ok {
				fgt, err = nil, e
				return
			}
			panic(r)
		}
	}()

	if minQ < 1 || maxQ < minQ || maxQ > 10 {
		return nil, NewError(InvalidParameter, fmt.Sprintf("fill: invalid range [%d,%d]", minQ, maxQ))
	}

	sorted := make([][]byte, len(grams))
	copy(sorted, grams)
	sort.Slice(sorted, func(i, j int) bool { return bytes.Compare(sorted[i], sorted[j]) < 0 })

	unique := sorted[:0]
	for i, g := range sorted {
		n := utf8.RuneCount(g)
		if n < minQ || n > maxQ {
			return nil, NewError(InvalidParameter, fmt.Sprintf("fill: gram %q has length %d outside [%d,%d]", g, n, minQ, maxQ))
		}
		if i > 0 && bytes.Equal(g, sorted[i-1]) {
			continue
		}
		unique = append(unique, g)
	}

	count := len(unique)
	headerSize := fgtHeaderFieldSize + 4*count

	payloadSize := 0
	for _, g := range unique {
		payloadSize += len(g) + 1
	}

	raw := make([]byte, headerSize+payloadSize)
	binary.LittleEndian.PutUint32(raw[0:4], uint32(count))

	offsets := make([]int32, count)
	pos := headerSize
	for i, g := range unique {
		offsets[i] = int32(pos)
		binary.LittleEndian.PutUint32(raw[4+4*i:8+4*i], uint32(pos))
		copy(raw[pos:], g)
		pos += len(g)
		raw[pos] = 0
		pos++
	}

	f := &FGT{minQ: minQ, maxQ: maxQ, count: count, raw: raw, offsets: offsets}
	f.bloom = newBloomFilter(count)
	for i := 0; i < count; i++ {
		f.bloom.add(f.Get(i))
	}
	return f, nil
}

// Marshal returns the packed byte representation of f, suitable for
// Unmarshal or, once written with WriteFGT, for memory-mapping back via
// OpenFGT.
func (f *FGT) Marshal() []byte {
	out := make([]byte, len(f.raw))
	copy(out, f.raw)
	return out
}

// Unmarshal parses a packed FGT produced by Marshal (or Fill). buf is held
// by reference, not copied — callers that pass a memory-mapped slice get a
// zero-copy FGT.
//
// Unmarshal is the boundary a caller loading an untrusted on-disk blob
// calls through: offsets are bounds-checked up front, but a gram whose
// offset lands inside the bounds yet still lacks a NUL terminator (e.g.
// a blob truncated mid-gram) only surfaces when Get walks it during the
// ordering check below. That panic is recovered here and returned as a
// CorruptedInput error rather than crashing the caller.
func Unmarshal(buf []byte, minQ, maxQ int) (fgt *FGT, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*Error); ok {
				fgt, err = nil, e
				return
			}
			panic(r)
		}
	}()

	if len(buf) < fgtHeaderFieldSize {
		return nil, NewError(CorruptedInput, "unmarshal: truncated fgt header")
	}
	count := int(binary.LittleEndian.Uint32(buf[0:4]))
	headerSize := fgtHeaderFieldSize + 4*count
	if headerSize > len(buf) {
		return nil, NewError(CorruptedInput, "unmarshal: truncated fgt offset table")
	}

	offsets := make([]int32, count)
	for i := 0; i < count; i++ {
		off := int32(binary.LittleEndian.Uint32(buf[4+4*i : 8+4*i]))
		if int(off) < headerSize || int(off) >= len(buf) {
			return nil, NewError(CorruptedInput, fmt.Sprintf("unmarshal: gram %d offset out of range", i))
		}
		offsets[i] = off
	}

	f := &FGT{minQ: minQ, maxQ: maxQ, count: count, raw: buf, offsets: offsets}

	prev := []byte(nil)
	for i := 0; i < count; i++ {
		g := f.Get(i)
		if prev != nil && bytes.Compare(prev, g) >= 0 {
			return nil, NewError(CorruptedInput, "unmarshal: fgt grams not in strict ascending order")
		}
		prev = g
	}

	f.bloom = newBloomFilter(count)
	for i := 0; i < count; i++ {
		f.bloom.add(f.Get(i))
	}
	return f, nil
}

// contains reports whether gram is present in f exactly.
func (f *FGT) contains(gram []byte) bool {
	if f.bloom != nil && !f.bloom.maybeHas(gram) {
		return false
	}
	lo, hi := f.prefixRange(gram, 0, f.count)
	return lo < hi && bytes.Equal(f.Get(lo), gram)
}

// prefixRange narrows [lo,hi) to the sub-range of entries that have data as
// a byte prefix. It is the "reuse bounds from the shorter prefix" step
// spec.md §4.2 describes: called again with a longer data and the range
// returned for a shorter prefix of it, it only has to search within that
// shrinking window.
func (f *FGT) prefixRange(data []byte, lo, hi int) (int, int) {
	if lo >= hi {
		return lo, lo
	}
	lo2 := lo + sort.Search(hi-lo, func(i int) bool {
		return bytes.Compare(f.Get(lo+i), data) >= 0
	})
	hi2 := lo2 + sort.Search(hi-lo2, func(i int) bool {
		return !bytes.HasPrefix(f.Get(lo2+i), data)
	})
	return lo2, hi2
}
