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

import "unicode/utf8"

// sentinel is the single-byte word-boundary marker prefixed and suffixed
// to every extractable run, making word-initial/-final n-grams
// first-class entries for the walker in walker.go.
const sentinel = '$'

// isExtractable reports whether b, the lead byte of a multibyte
// character, makes that character extractable. Classification is
// byte-oriented on the lead byte only: multibyte letters are treated as
// non-extractable and terminate a word, matching the host's
// byte-oriented classification of "word characters" at the lead byte.
func isExtractable(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func lowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// ScanWords walks data stepping by UTF-8 rune boundaries and invokes
// onWord once for each maximal run of extractable characters. The slice
// passed to onWord is lowercased and padded with the sentinel byte on
// both ends (so it always has length >= 2 and never contains sentinel
// internally); it is only valid for the duration of the call.
//
// onWord is called in left-to-right order of the runs it reports.
func ScanWords(data []byte, onWord func(word []byte)) {
	var buf []byte
	inWord := false

	flush := func() {
		if inWord {
			buf = append(buf, sentinel)
			onWord(buf)
			buf = nil
			inWord = false
		}
	}

	for len(data) > 0 {
		b0 := data[0]
		_, sz := utf8.DecodeRune(data)
		if sz <= 0 {
			sz = 1
		}

		if b0 < utf8.RuneSelf && isExtractable(b0) {
			if !inWord {
				buf = append(buf[:0], byte(sentinel))
				inWord = true
			}
			buf = append(buf, lowerASCII(b0))
		} else {
			flush()
		}

		data = data[sz:]
	}
	flush()
}
