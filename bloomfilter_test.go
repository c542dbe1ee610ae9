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

import "testing"

func TestBloomFilterNoFalseNegatives(t *testing.T) {
	entries := []string{"the", "and", "for", "not", "ing", "tion", "ment"}
	f := newBloomFilter(len(entries))
	for _, e := range entries {
		f.add([]byte(e))
	}
	for _, e := range entries {
		if !f.maybeHas([]byte(e)) {
			t.Errorf("maybeHas(%q) = false after add, bloom filter must have no false negatives", e)
		}
	}
}

func TestBloomFilterRejectsSomeAbsentKeys(t *testing.T) {
	f := newBloomFilter(4)
	f.add([]byte("alpha"))
	f.add([]byte("bravo"))

	rejected := false
	for _, k := range []string{"zzz1", "zzz2", "zzz3", "zzz4", "zzz5", "zzz6"} {
		if !f.maybeHas([]byte(k)) {
			rejected = true
			break
		}
	}
	if !rejected {
		t.Fatal("expected at least one absent key to be rejected")
	}
}
