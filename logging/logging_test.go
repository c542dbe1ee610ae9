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

package logging

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPanicsBeforeInit(t *testing.T) {
	logger = nil
	assert.Panics(t, func() { Get() })
}

func TestInitIsIdempotent(t *testing.T) {
	logger = nil
	once = sync.Once{}

	Init(Options{Format: FormatJSON})
	first := Get()
	Init(Options{Format: FormatConsole})
	second := Get()

	assert.Same(t, first, second)
}

func TestRunIDsAreDistinct(t *testing.T) {
	a := RunID()
	b := RunID()
	assert.NotEqual(t, a, b)
}

func TestInstanceIDStable(t *testing.T) {
	assert.Equal(t, InstanceID(), InstanceID())
}
