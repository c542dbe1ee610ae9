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

// RuneOffsets returns the byte offset of every rune boundary in b, plus a
// trailing entry equal to len(b), so that b[offsets[i]:offsets[j]] is the
// substring spanning runes [i,j). Used by packages stats and pattern to
// enumerate q-grams over a word or literal fragment without repeatedly
// re-decoding rune boundaries.
func RuneOffsets(b []byte) []int {
	offsets := make([]int, 0, len(b)+1)
	for i := range b {
		if b[i]&0xC0 != 0x80 {
			offsets = append(offsets, i)
		}
	}
	offsets = append(offsets, len(b))
	return offsets
}
