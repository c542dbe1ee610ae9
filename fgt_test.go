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
	"sort"
	"testing"
)

func grams(ss ...string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}

func TestFillAndGet(t *testing.T) {
	f, err := Fill(grams("the", "and", "ing", "and"), 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if f.Count() != 3 {
		t.Fatalf("Count() = %d, want 3 (duplicates must be dropped)", f.Count())
	}

	var got []string
	for i := 0; i < f.Count(); i++ {
		got = append(got, string(f.Get(i)))
	}
	if !sort.StringsAreSorted(got) {
		t.Fatalf("grams not sorted: %v", got)
	}
	want := []string{"and", "ing", "the"}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("got[%d] = %q, want %q", i, got[i], w)
		}
	}
}

func TestFillRejectsOutOfRangeLength(t *testing.T) {
	_, err := Fill(grams("ab", "cde"), 3, 3)
	if err == nil {
		t.Fatal("expected error for gram outside [minQ,maxQ]")
	}
	var verr *Error
	if !asError(err, &verr) || verr.Kind != InvalidParameter {
		t.Fatalf("expected InvalidParameter error, got %v", err)
	}
}

func TestFillRejectsBadRange(t *testing.T) {
	if _, err := Fill(grams("ab"), 4, 2); err == nil {
		t.Fatal("expected error for minQ > maxQ")
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	f, err := Fill(grams("alpha", "bravo", "charlie", "delta"), 5, 7)
	if err != nil {
		t.Fatal(err)
	}

	buf := f.Marshal()
	f2, err := Unmarshal(buf, 5, 7)
	if err != nil {
		t.Fatal(err)
	}
	if f2.Count() != f.Count() {
		t.Fatalf("Count() after round trip = %d, want %d", f2.Count(), f.Count())
	}
	for i := 0; i < f.Count(); i++ {
		if !bytes.Equal(f.Get(i), f2.Get(i)) {
			t.Fatalf("Get(%d) = %q, want %q", i, f2.Get(i), f.Get(i))
		}
	}
}

func TestUnmarshalRejectsUnsortedInput(t *testing.T) {
	f, err := Fill(grams("aaa", "bbb", "ccc"), 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	buf := f.Marshal()

	// Swap the offsets of the first two entries, breaking ascending order,
	// without touching the count field.
	buf[4], buf[8] = buf[8], buf[4]
	buf[5], buf[9] = buf[9], buf[5]
	buf[6], buf[10] = buf[10], buf[6]
	buf[7], buf[11] = buf[11], buf[7]

	if _, err := Unmarshal(buf, 3, 3); err == nil {
		t.Fatal("expected error for out-of-order grams")
	}
}

func TestContains(t *testing.T) {
	f, err := Fill(grams("the", "and", "for", "not"), 3, 3)
	if err != nil {
		t.Fatal(err)
	}

	for _, g := range []string{"the", "and", "for", "not"} {
		if !f.contains([]byte(g)) {
			t.Errorf("contains(%q) = false, want true", g)
		}
	}
	for _, g := range []string{"xyz", "abc", "zzz"} {
		if f.contains([]byte(g)) {
			t.Errorf("contains(%q) = true, want false", g)
		}
	}
}

func asError(err error, target **Error) bool {
	if e, ok := err.(*Error); ok {
		*target = e
		return true
	}
	return false
}
