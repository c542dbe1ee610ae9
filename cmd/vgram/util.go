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

package main

import (
	vgram "github.com/vgram-index/vgram"
)

// openOrEmptyFGT opens the FGT at path if given, or returns an empty one
// built from no grams so the walker still applies the minQ/maxQ shape
// without any frequent-gram skipping — useful for extract/query runs
// that are only exercising tokenization, not a real built index.
func openOrEmptyFGT(path string, minQ, maxQ int) (*vgram.FGT, func() error, error) {
	if path == "" {
		fgt, err := vgram.Fill(nil, minQ, maxQ)
		if err != nil {
			return nil, nil, err
		}
		return fgt, func() error { return nil }, nil
	}

	mapped, err := vgram.OpenFGT(path, minQ, maxQ)
	if err != nil {
		return nil, nil, err
	}
	return mapped.FGT, mapped.Close, nil
}
