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
	"path/filepath"
	"testing"
)

func TestWriteFGTAndOpenFGT(t *testing.T) {
	f, err := Fill(grams("the", "and", "for", "not", "ing"), 3, 3)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "frequent.fgt")
	if err := WriteFGT(path, f); err != nil {
		t.Fatal(err)
	}

	mapped, err := OpenFGT(path, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	defer mapped.Close()

	if mapped.Count() != f.Count() {
		t.Fatalf("Count() = %d, want %d", mapped.Count(), f.Count())
	}
	for i := 0; i < f.Count(); i++ {
		if !bytes.Equal(f.Get(i), mapped.Get(i)) {
			t.Fatalf("Get(%d) = %q, want %q", i, mapped.Get(i), f.Get(i))
		}
	}
	if !mapped.contains([]byte("and")) {
		t.Error("mapped FGT should contain \"and\"")
	}
	if mapped.contains([]byte("xyz")) {
		t.Error("mapped FGT should not contain \"xyz\"")
	}
}
