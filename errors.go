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
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies the errors this core can raise, matching the error
// taxonomy a host embedding this core is expected to surface distinctly
// (a configuration error fails CREATE INDEX; an aggregate-context misuse
// is a caller bug; a corrupted-FGT lookup is a programming invariant
// violation).
type Kind int

const (
	// InvalidParameter: minQ/maxQ out of range or inconsistent, or a
	// supplied gram's length falls outside [minQ,maxQ].
	InvalidParameter Kind = iota
	// InvalidUsage: an aggregate-only function used outside an
	// aggregate context (e.g. Finish called before any Add).
	InvalidUsage
	// CorruptedInput: a binary-search mismatch on a gram the caller
	// asserted was present in the FGT. Always a programming invariant
	// violation, never a user-data problem.
	CorruptedInput
	// UnsupportedStrategy: a query strategy other than LIKE/ILIKE.
	UnsupportedStrategy
)

func (k Kind) String() string {
	switch k {
	case InvalidParameter:
		return "InvalidParameter"
	case InvalidUsage:
		return "InvalidUsage"
	case CorruptedInput:
		return "CorruptedInput"
	case UnsupportedStrategy:
		return "UnsupportedStrategy"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type every exported entry point in this
// module returns. Callers that care about the distinction can type-assert
// or errors.As to *Error and switch on Kind; everything else can just
// treat it as a normal error.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// NewError constructs an *Error of the given kind.
func NewError(k Kind, msg string) *Error {
	return &Error{Kind: k, msg: msg}
}

// WrapError constructs an *Error of the given kind, wrapping err with
// pkg/errors so the original call stack survives for logging.
func WrapError(k Kind, err error, msg string) *Error {
	return &Error{Kind: k, msg: msg, err: errors.Wrap(err, msg)}
}
