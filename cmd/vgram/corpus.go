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
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/RoaringBitmap/roaring"
	"github.com/bmatcuk/doublestar"
	"golang.org/x/sync/errgroup"

	"github.com/vgram-index/vgram/ignore"
)

// corpusOptions configures loadCorpus's walk over a directory tree of
// documents for collect-frequent/analyze.
type corpusOptions struct {
	dir          string
	excludeGlobs []string
	maxSizeBytes int64
}

// corpusResult is the outcome of walking and reading a corpus directory.
type corpusResult struct {
	// Paths holds every eligible file path considered, in stable order.
	Paths []string
	// Docs holds the file contents for each index where Skipped is not
	// set; Docs[i] is nil when Skipped.Contains(uint32(i)).
	Docs [][]byte
	// Skipped tracks, by index into Paths, every file that could not be
	// read — kept compactly instead of as a slice of skipped path strings.
	// Ignored and over-size files are left out of Paths altogether and are
	// not counted here.
	Skipped *roaring.Bitmap
}

// loadCorpus walks opts.dir, applies an optional .vgramignore matcher
// and doublestar exclude globs, and reads the remaining files
// concurrently (bounded by GOMAXPROCS, honoring automaxprocs' container
// CPU quota) before handing documents to a single-threaded aggregate.
func loadCorpus(ctx context.Context, opts corpusOptions) (*corpusResult, error) {
	matcher, err := ignore.NewDefaultMatcher()
	if err != nil {
		return nil, err
	}
	if f, ferr := os.Open(filepath.Join(opts.dir, ignore.IgnoreFile)); ferr == nil {
		m, perr := ignore.ParseIgnoreFile(f)
		f.Close()
		if perr != nil {
			return nil, perr
		}
		matcher = matcher.Merge(m)
	}

	var paths []string
	err = filepath.Walk(opts.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, rerr := filepath.Rel(opts.dir, path)
		if rerr != nil {
			rel = path
		}
		if matcher != nil && matcher.Match(rel) {
			return nil
		}
		for _, g := range opts.excludeGlobs {
			if ok, _ := doublestar.PathMatch(g, rel); ok {
				return nil
			}
		}
		if opts.maxSizeBytes > 0 && info.Size() > opts.maxSizeBytes {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	docs := make([][]byte, len(paths))
	skipped := roaring.New()
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			b, rerr := os.ReadFile(p)
			if rerr != nil {
				mu.Lock()
				skipped.Add(uint32(i))
				mu.Unlock()
				return nil
			}
			docs[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &corpusResult{Paths: paths, Docs: docs, Skipped: skipped}, nil
}
