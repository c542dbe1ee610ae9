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

	"github.com/google/go-cmp/cmp"
)

func TestScanWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"hello", []string{"$hello$"}},
		{"Hello, World!", []string{"$hello$", "$world$"}},
		{"  spaced  out  ", []string{"$spaced$", "$out$"}},
		{"café bar", []string{"$caf$", "$bar$"}},
		{"a1b2", []string{"$a1b2$"}},
		{"---", nil},
	}

	for _, tt := range tests {
		var got []string
		ScanWords([]byte(tt.in), func(word []byte) {
			got = append(got, string(word))
		})
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ScanWords(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestScanWordsBufferReuse(t *testing.T) {
	var captured [][]byte
	ScanWords([]byte("one two"), func(word []byte) {
		c := make([]byte, len(word))
		copy(c, word)
		captured = append(captured, c)
	})
	if len(captured) != 2 || string(captured[0]) != "$one$" || string(captured[1]) != "$two$" {
		t.Fatalf("unexpected captured words: %q", captured)
	}
}
