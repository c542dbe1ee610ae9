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
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func mustFill(t *testing.T, ss []string, minQ, maxQ int) *FGT {
	t.Helper()
	f, err := Fill(grams(ss...), minQ, maxQ)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestWalkEmptyTableEmitsEveryMinQGram(t *testing.T) {
	f := mustFill(t, nil, 2, 2)

	word := []byte("$ab$")
	var got []Vgram
	Walk(f, word, 2, 2, func(v Vgram) { got = append(got, v) })

	want := []Vgram{{0, 2}, {1, 3}, {2, 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Walk mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkMinimalCoverSkipsCoveringCandidates(t *testing.T) {
	// "an" and "and" are both frequent, so growth from p=0 continues to
	// length 4 before finding the rare gram "ands". The candidates at p=1
	// ("nd") and p=2 ("ds") lie inside it, so "ands" is dropped in favour
	// of the shorter nested grams.
	f := mustFill(t, []string{"an", "and"}, 2, 4)

	word := []byte("ands")
	var got []Vgram
	Walk(f, word, 2, 4, func(v Vgram) { got = append(got, v) })

	if len(got) == 0 {
		t.Fatal("expected at least one emitted gram")
	}
	for _, v := range got {
		n := utf8.RuneCount(word[v.Start:v.End])
		if n < 2 || n > 4 {
			t.Errorf("emitted gram %q has length %d outside [2,4]", word[v.Start:v.End], n)
		}
	}

	want := []Vgram{{1, 3}, {2, 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Walk mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkNoCandidateWhenAllFrequent(t *testing.T) {
	f := mustFill(t, []string{"ab", "bc", "cd"}, 2, 2)

	var got []Vgram
	Walk(f, []byte("abcd"), 2, 2, func(v Vgram) { got = append(got, v) })
	if len(got) != 0 {
		t.Fatalf("Walk = %v, want no candidates (all length-2 substrings are frequent)", got)
	}
}

func TestWalkEmissionIsMinimalCover(t *testing.T) {
	// Empty table at minQ=2,maxQ=3 over "abcd": every 2- and 3-length
	// substring is rare, so each start position's candidate is found
	// at length 2 (the minimum), and minimal cover degenerates to
	// emitting every overlapping 2-gram, same as the minQ==maxQ case.
	f := mustFill(t, nil, 2, 3)

	var got []Vgram
	Walk(f, []byte("abcd"), 2, 3, func(v Vgram) { got = append(got, v) })

	want := []Vgram{{0, 2}, {1, 3}, {2, 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Walk mismatch (-want +got):\n%s", diff)
	}
}

func FuzzWalk(f *testing.F) {
	f.Add("hello world", "lo wo")
	f.Add("", "")
	f.Add("$repeated$repeated$", "epe")
	f.Add("aaaaaaaaaa", "aaa")

	table, err := Fill(grams("in", "ing", "th", "the", "an", "and"), 2, 4)
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, word, frequent string) {
		_ = frequent
		wb := []byte(word)
		var prevEnd = -1
		Walk(table, wb, 2, 4, func(v Vgram) {
			if v.Start < 0 || v.End > len(wb) || v.Start >= v.End {
				t.Fatalf("invalid vgram range %v over word of length %d", v, len(wb))
			}
			if !utf8.Valid(wb[v.Start:v.End]) {
				return
			}
			n := utf8.RuneCount(wb[v.Start:v.End])
			if n < 2 || n > 4 {
				t.Fatalf("emitted gram %q has char length %d outside [2,4]", wb[v.Start:v.End], n)
			}
			if v.End <= prevEnd {
				t.Fatalf("emitted gram %v does not strictly extend coverage past %d", v, prevEnd)
			}
			prevEnd = v.End
		})
	})
}
