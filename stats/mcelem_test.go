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
)

func TestMCElemTableEncodeDecodeRoundTrip(t *testing.T) {
	table := &MCElemTable{
		Elems: []MCElem{
			{Gram: []byte("$t"), Freq: 0.9},
			{Gram: []byte("he"), Freq: 0.6},
			{Gram: []byte("the"), Freq: 0.4},
		},
		MinFreq: 0.4,
		MaxFreq: 0.9,
	}

	buf := table.Encode()
	decoded, err := DecodeMCElemTable(buf)
	require.NoError(t, err)

	require.Len(t, decoded.Elems, len(table.Elems))
	for i, e := range table.Elems {
		assert.Equal(t, string(e.Gram), string(decoded.Elems[i].Gram))
		assert.InDelta(t, e.Freq, decoded.Elems[i].Freq, 1e-12)
	}
	assert.InDelta(t, table.MinFreq, decoded.MinFreq, 1e-12)
	assert.InDelta(t, table.MaxFreq, decoded.MaxFreq, 1e-12)
}

func TestMCElemTableFind(t *testing.T) {
	table := &MCElemTable{
		Elems: []MCElem{
			{Gram: []byte("aa"), Freq: 0.1},
			{Gram: []byte("bb"), Freq: 0.2},
			{Gram: []byte("cc"), Freq: 0.3},
		},
	}

	e, ok := table.Find([]byte("bb"))
	require.True(t, ok)
	assert.InDelta(t, 0.2, e.Freq, 1e-12)

	_, ok = table.Find([]byte("zz"))
	assert.False(t, ok)
}

func TestDecodeMCElemTableRejectsTruncated(t *testing.T) {
	_, err := DecodeMCElemTable([]byte{1, 2, 3})
	require.Error(t, err)
}
