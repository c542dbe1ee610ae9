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

// Package opclass holds the operator-class parameters an index build is
// configured with: the gram length range and the caller-supplied
// frequent-gram seed list validated at build time.
package opclass

import (
	"crypto/sha1"
	"flag"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	vgram "github.com/vgram-index/vgram"
)

const (
	defaultMinQ = 2
	defaultMaxQ = 2
	maxAllowedQ = 10
)

// Options holds the CREATE INDEX-time parameters spec.md §6 requires:
// the gram length range and the vgrams seed list an FGT is filled from.
type Options struct {
	// MinQ is the minimum V-gram character length, in [1,10].
	MinQ int
	// MaxQ is the maximum V-gram character length, in [MinQ,10].
	MaxQ int
	// Vgrams is the list of frequent grams this index's FGT is built
	// from; each element's character length must fall in [MinQ,MaxQ].
	Vgrams []string
}

// SetDefaults fills MinQ/MaxQ with spec.md §6's defaults (2,2) if unset.
func (o *Options) SetDefaults() {
	if o.MinQ == 0 {
		o.MinQ = defaultMinQ
	}
	if o.MaxQ == 0 {
		o.MaxQ = defaultMaxQ
	}
}

// Validate checks MinQ/MaxQ/Vgrams against spec.md §6's constraints,
// returning an *vgram.Error of kind InvalidParameter on the first
// violation found. A CREATE INDEX-equivalent call must reject the
// build outright rather than silently clamping.
func (o *Options) Validate() error {
	if o.MinQ < 1 || o.MinQ > maxAllowedQ {
		return vgram.NewError(vgram.InvalidParameter, fmt.Sprintf("opclass: minQ=%d out of range [1,%d]", o.MinQ, maxAllowedQ))
	}
	if o.MaxQ < o.MinQ || o.MaxQ > maxAllowedQ {
		return vgram.NewError(vgram.InvalidParameter, fmt.Sprintf("opclass: maxQ=%d must be in [minQ=%d,%d]", o.MaxQ, o.MinQ, maxAllowedQ))
	}
	for _, g := range o.Vgrams {
		n := utf8.RuneCountInString(g)
		if n < o.MinQ || n > o.MaxQ {
			return vgram.NewError(vgram.InvalidParameter, fmt.Sprintf("opclass: vgram %q has length %d outside [%d,%d]", g, n, o.MinQ, o.MaxQ))
		}
	}
	return nil
}

// Build validates o and fills an FGT from o.Vgrams.
func (o *Options) Build() (*vgram.FGT, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	grams := make([][]byte, len(o.Vgrams))
	for i, g := range o.Vgrams {
		grams[i] = []byte(g)
	}
	return vgram.Fill(grams, o.MinQ, o.MaxQ)
}

// HashOptions returns a content hash of the fields that affect an FGT's
// contents, used by a host embedding this package to detect whether an
// index's options changed since it was last built (the same role
// HashOptions plays for the teacher's IndexState, simplified to a single
// comparison since there is no incremental shard-rebuild state here).
func (o *Options) HashOptions() string {
	hasher := sha1.New()
	fmt.Fprintf(hasher, "%d:%d", o.MinQ, o.MaxQ)
	sorted := append([]string(nil), o.Vgrams...)
	sort.Strings(sorted)
	for _, g := range sorted {
		fmt.Fprintf(hasher, ":%s", g)
	}
	return fmt.Sprintf("%x", hasher.Sum(nil))
}

type vgramsFlag struct{ *Options }

func (f vgramsFlag) String() string {
	if f.Options == nil {
		return ""
	}
	return strings.Join(f.Vgrams, ",")
}

func (f vgramsFlag) Set(value string) error {
	f.Vgrams = append(f.Vgrams, value)
	return nil
}

// Flags registers o's fields onto fs, the inverse of Args.
func (o *Options) Flags(fs *flag.FlagSet) {
	x := *o
	x.SetDefaults()
	fs.IntVar(&o.MinQ, "minq", x.MinQ, "minimum V-gram character length")
	fs.IntVar(&o.MaxQ, "maxq", x.MaxQ, "maximum V-gram character length")
	fs.Var(vgramsFlag{o}, "vgram", "a frequent gram to seed the FGT with; may be repeated")
}

// Args returns o as a sequence of flag arguments that Flags can parse
// back into an equivalent Options.
func (o *Options) Args() []string {
	var args []string
	if o.MinQ != 0 {
		args = append(args, "-minq", strconv.Itoa(o.MinQ))
	}
	if o.MaxQ != 0 {
		args = append(args, "-maxq", strconv.Itoa(o.MaxQ))
	}
	for _, g := range o.Vgrams {
		args = append(args, "-vgram", g)
	}
	return args
}
