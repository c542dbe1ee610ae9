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

// Package vgram implements a variable-length n-gram ("V-gram") text
// indexing core: a word segmenter, a frequent-gram-guided minimal-cover
// walker, and the packed frequent-gram table (FGT) both consult.
//
// The package does not build or query an inverted index itself — it
// hands a host (a database's posting-list storage and query planner) the
// set of V-grams to index a value under, or to search for given a
// pattern. See packages stats and pattern for the statistics collectors
// and wildcard-pattern planner that sit on either side of the FGT.
package vgram
