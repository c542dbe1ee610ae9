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

package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vgram "github.com/vgram-index/vgram"
)

func containsGram(t *testing.T, grams [][]byte, s string) bool {
	t.Helper()
	for _, g := range grams {
		if string(g) == s {
			return true
		}
	}
	return false
}

func TestExactThreshold(t *testing.T) {
	e, err := NewExact(2, 2, 0.5)
	require.NoError(t, err)

	e.Add([]byte("aardvark"))
	e.Add([]byte("aardwolf"))
	e.Add([]byte("zebra"))

	grams, err := e.Finish()
	require.NoError(t, err)

	// "$a" occurs (as a word-initial bigram) in two of the three
	// documents, above floor(0.5*3)=1.
	assert.True(t, containsGram(t, grams, "$a"))
}

func TestExactDedupesWithinDocument(t *testing.T) {
	e, err := NewExact(2, 2, 1.0)
	require.NoError(t, err)

	// "aa" appears three times in "aaaa" but must only count once toward
	// its document frequency.
	e.Add([]byte("aaaa"))
	e.Add([]byte("zzzz"))

	grams, err := e.Finish()
	require.NoError(t, err)
	assert.False(t, containsGram(t, grams, "aa"), "threshold 1.0 over 2 docs requires presence in both")
}

func TestExactNullDocumentCountsTowardThreshold(t *testing.T) {
	e, err := NewExact(2, 2, 0.5)
	require.NoError(t, err)

	e.Add([]byte("aaaa"))
	e.AddNull()

	grams, err := e.Finish()
	require.NoError(t, err)
	assert.True(t, containsGram(t, grams, "aa"), "floor(0.5*2)=1, present in 1 of 2 docs")

	e2, err := NewExact(2, 2, 1.0)
	require.NoError(t, err)

	e2.Add([]byte("aaaa"))
	e2.AddNull()

	grams, err = e2.Finish()
	require.NoError(t, err)
	assert.False(t, containsGram(t, grams, "aa"), "floor(1.0*2)=2: the NULL document raises the cutoff above aa's count of 1")
}

func TestExactFinishRequiresAggregateContext(t *testing.T) {
	e, err := NewExact(2, 2, 0.5)
	require.NoError(t, err)

	_, err = e.Finish()
	require.Error(t, err)
	var verr *vgram.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, vgram.InvalidUsage, verr.Kind)
}

func TestExactFinishTwiceFails(t *testing.T) {
	e, err := NewExact(2, 2, 0)
	require.NoError(t, err)
	e.Add([]byte("abc"))

	_, err = e.Finish()
	require.NoError(t, err)

	_, err = e.Finish()
	require.Error(t, err)
}

func TestExactZeroDocuments(t *testing.T) {
	// No non-NULL document: the single NULL contributes no grams. (Finish
	// with no Add/AddNull at all is an InvalidUsage error instead; see
	// TestExactFinishRequiresAggregateContext.)
	e, err := NewExact(2, 2, 0)
	require.NoError(t, err)
	e.AddNull()

	grams, err := e.Finish()
	require.NoError(t, err)
	assert.Empty(t, grams)
}

func TestExactRejectsInvalidRange(t *testing.T) {
	_, err := NewExact(4, 2, 0.1)
	require.Error(t, err)

	_, err = NewExact(2, 4, 1.5)
	require.Error(t, err)
}
